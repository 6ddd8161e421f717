package meter

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// The two meter types stocked; lifecycle tables carry a matching check
// constraint.
const (
	TypeSplit      = "split"
	TypeIntegrated = "integrated"
)

// SoldStatus is the in-place status of a sold meter. Sold rows are never
// re-created; fault and replacement transition the status on the same row.
type SoldStatus string

const (
	SoldActive   SoldStatus = "active"
	SoldFaulty   SoldStatus = "faulty"
	SoldReplaced SoldStatus = "replaced"
)

// FaultStatus is the repair decision state of a faulty return.
type FaultStatus string

const (
	FaultPending      FaultStatus = "pending"
	FaultRepaired     FaultStatus = "repaired"
	FaultUnrepairable FaultStatus = "unrepairable"
)

// Location names the single table a serial may occupy. A serial exists in
// at most one location at any time; the lifecycle transactions enforce it.
type Location string

const (
	LocationStock  Location = "stock"
	LocationAgent  Location = "agent_inventory"
	LocationSold   Location = "sold"
	LocationFaulty Location = "faulty_return"
)

// StockMeter is a meter sitting in available stock, either from purchase
// intake or restored after an agent return or repair.
type StockMeter struct {
	SerialNumber string
	Type         string
	AddedBy      uuid.UUID
	AdderName    string
	AddedAt      time.Time
	BatchID      *uuid.UUID
}

// AgentInventoryEntry is a meter consigned to an agent, pending final sale.
type AgentInventoryEntry struct {
	SerialNumber string
	Type         string
	AgentID      uuid.UUID
	AssignedAt   time.Time
}

// SoldMeter records a final sale of one serial. The replacement fields are
// populated only when the row transitions to SoldReplaced. MeterType is not
// a column of sold_meters; reads resolve it through the sale batch.
type SoldMeter struct {
	SerialNumber      string
	MeterType         string
	SoldAt            time.Time
	SoldBy            uuid.UUID
	Destination       string
	Recipient         string
	CustomerContact   string
	CustomerType      string
	CustomerCounty    string
	UnitPrice         decimal.Decimal
	BatchID           uuid.UUID
	Status            SoldStatus
	ReplacementSerial *string
	ReplacementDate   *time.Time
	ReplacementBy     *uuid.UUID
}

// FaultyReturn is a sold meter returned as defective, pending a repair or
// write-off decision.
type FaultyReturn struct {
	ID               uuid.UUID
	SerialNumber     string
	Type             string
	ReturnedBy       uuid.UUID
	ReturnerName     string
	ReturnedAt       time.Time
	FaultDescription string
	Status           FaultStatus
	OriginalSaleID   uuid.UUID
}

// SaleBatch groups meters of one type sold together at a single unit price.
// Immutable once created; multi-type sales link several batches to one
// parent SalesTransaction.
type SaleBatch struct {
	ID              uuid.UUID
	TransactionID   uuid.UUID
	MeterType       string
	BatchAmount     int
	UnitPrice       decimal.Decimal
	TotalPrice      decimal.Decimal
	UserID          uuid.UUID
	UserName        string
	Destination     string
	Recipient       string
	CustomerType    string
	CustomerCounty  string
	CustomerContact string
	SaleDate        time.Time
}

// SalesTransaction is the parent grouping of one sale event, carrying the
// human-facing reference number printed on the receipt.
type SalesTransaction struct {
	ID              uuid.UUID
	ReferenceNumber string
	CreatedBy       uuid.UUID
	CreatedAt       time.Time
}

// AuditAction labels an agent_transactions audit row.
type AuditAction string

const (
	AuditAssigned   AuditAction = "assigned"
	AuditReturned   AuditAction = "returned"
	AuditWrittenOff AuditAction = "written_off"
)

// AgentAudit is an append-only record of stock moving to or from an agent.
type AgentAudit struct {
	ID         uuid.UUID
	AgentID    uuid.UUID
	Action     AuditAction
	Serials    []string
	ActorID    uuid.UUID
	ActorName  string
	RecordedAt time.Time
}
