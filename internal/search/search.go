package search

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Location tags which lifecycle table a hit came from.
type Location string

const (
	LocationStock    Location = "in_stock"
	LocationAgent    Location = "with_agent"
	LocationSold     Location = "sold"
	LocationReplaced Location = "replaced"
	LocationFaulty   Location = "faulty_return"
)

// Hit is one search result. Exactly one of the detail fields is non-nil,
// matching Location.
type Hit struct {
	SerialNumber string
	MeterType    string
	Location     Location

	Stock *StockDetail
	Agent *AgentDetail
	Sold  *SoldDetail
	Fault *FaultDetail
}

type StockDetail struct {
	AdderName string
	AddedAt   time.Time
}

type AgentDetail struct {
	AgentID    uuid.UUID
	AgentName  string
	AssignedAt time.Time
}

type SoldDetail struct {
	SoldAt     time.Time
	SellerName string
	Recipient  string
	UnitPrice  decimal.Decimal
	Status     string

	// Populated when the sold row was replaced, or when the query matched
	// the replacement serial rather than the originally sold one.
	ReplacementSerial  string
	MatchedReplacement bool
}

type FaultDetail struct {
	Status           string
	FaultDescription string
	ReturnerName     string
	ReturnedAt       time.Time
}
