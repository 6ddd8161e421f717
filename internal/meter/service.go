package meter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kmutua/metertrack/internal/user"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=meter
type Repository interface {
	ListStockSerials(ctx context.Context) ([]string, error)
	GetAgentInventory(ctx context.Context, agentID uuid.UUID) ([]AgentInventoryEntry, error)
	GetFaultyReturn(ctx context.Context, id uuid.UUID) (*FaultyReturn, error)

	// Begin opens a lifecycle transaction holding per-serial advisory locks,
	// so concurrent operations touching the same serials serialize instead
	// of interleaving half-applied transitions.
	Begin(ctx context.Context, serials []string) (LifecycleTx, error)
}

// LifecycleTx is one atomic multi-table transition. Every mutation of the
// five lifecycle tables goes through it; nothing commits halfway.
type LifecycleTx interface {
	RecordOperation(ctx context.Context, key uuid.UUID, op string) error
	SerialLocations(ctx context.Context, serials []string) (map[string]Location, error)

	StockBySerials(ctx context.Context, serials []string) ([]StockMeter, error)
	InsertStock(ctx context.Context, meters []StockMeter) error
	DeleteStock(ctx context.Context, serials []string) (int, error)

	AgentEntriesBySerials(ctx context.Context, agentID uuid.UUID, serials []string) ([]AgentInventoryEntry, error)
	AgentInventorySerials(ctx context.Context, agentID uuid.UUID) ([]string, error)
	InsertAgentInventory(ctx context.Context, entries []AgentInventoryEntry) error
	DeleteAgentInventory(ctx context.Context, agentID uuid.UUID, serials []string) (int, error)

	SoldBySerials(ctx context.Context, serials []string) ([]SoldMeter, error)
	InsertSold(ctx context.Context, meters []SoldMeter) error
	DeleteSold(ctx context.Context, serial string) error
	MarkSoldFaulty(ctx context.Context, serial string) error
	MarkSoldReplaced(ctx context.Context, serial, replacementSerial string, by uuid.UUID, at time.Time) error

	InsertFaultyReturn(ctx context.Context, fr *FaultyReturn) error
	DeleteFaultyReturn(ctx context.Context, id uuid.UUID) error
	SetFaultStatus(ctx context.Context, id uuid.UUID, status FaultStatus) error

	InsertSalesTransaction(ctx context.Context, st *SalesTransaction) error
	InsertSaleBatch(ctx context.Context, b *SaleBatch) error

	InsertAudit(ctx context.Context, a *AgentAudit) error
	DeleteAgentRecord(ctx context.Context, agentID uuid.UUID) error
	DeleteAgentAudit(ctx context.Context, agentID uuid.UUID) error

	Commit() error
	Rollback() error
}

// UserDirectory resolves acting users. Satisfied by *user.Service.
type UserDirectory interface {
	Profile(ctx context.Context, id uuid.UUID) (*user.Profile, error)
}

// Service is the lifecycle engine. It owns the serial cache and drives every
// multi-table transition through a single LifecycleTx.
type Service struct {
	repo  Repository
	users UserDirectory
	cache *SerialCache
	mode  MatchMode
}

func NewService(repo Repository, users UserDirectory, mode MatchMode) *Service {
	return &Service{
		repo:  repo,
		users: users,
		cache: NewSerialCache(repo, mode),
		mode:  mode,
	}
}

// actor resolves the acting user and refuses deactivated accounts before
// any write happens.
func (s *Service) actor(ctx context.Context, id uuid.UUID) (*user.Profile, error) {
	p, err := s.users.Profile(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolving actor: %w", err)
	}

	if !p.Active {
		return nil, ErrAccountDeactivated
	}

	return p, nil
}

// CheckMeterExists reports whether a serial is currently in stock, using
// the memoized stock listing.
func (s *Service) CheckMeterExists(ctx context.Context, serial string) (bool, error) {
	return s.cache.Exists(ctx, serial)
}

// InvalidateCache drops the memoized stock listing. Exposed for callers
// that know another writer has touched stock (e.g. the nightly job).
func (s *Service) InvalidateCache() {
	s.cache.Invalidate()
}

func (s *Service) AgentInventory(ctx context.Context, agentID uuid.UUID) ([]AgentInventoryEntry, error) {
	return s.repo.GetAgentInventory(ctx, agentID)
}

type NewMeter struct {
	SerialNumber string
	Type         string
}

type AddMetersParams struct {
	ActorID        uuid.UUID
	IdempotencyKey uuid.UUID
	Meters         []NewMeter
}

// AddMeters bulk-inserts purchase intake into stock. Duplicate serials are
// rejected against every lifecycle table, not just stock, inside the same
// transaction that inserts.
func (s *Service) AddMeters(ctx context.Context, params AddMetersParams) error {
	if len(params.Meters) == 0 {
		return &ValidationError{Field: "meters", Reason: "at least one meter required"}
	}

	for _, m := range params.Meters {
		if strings.TrimSpace(m.SerialNumber) == "" {
			return &ValidationError{Field: "serial_number", Reason: "must not be empty"}
		}

		switch strings.TrimSpace(m.Type) {
		case TypeSplit, TypeIntegrated:
		default:
			return &ValidationError{Field: "type", Reason: fmt.Sprintf("%q is not a meter type", m.Type)}
		}
	}

	actor, err := s.actor(ctx, params.ActorID)
	if err != nil {
		return err
	}

	serials := make([]string, len(params.Meters))
	for i, m := range params.Meters {
		serials[i] = m.SerialNumber
	}

	tx, err := s.repo.Begin(ctx, serials)
	if err != nil {
		return fmt.Errorf("begin add meters: %w", err)
	}
	defer tx.Rollback()

	if err := tx.RecordOperation(ctx, params.IdempotencyKey, "add_meters"); err != nil {
		return err
	}

	locations, err := tx.SerialLocations(ctx, serials)
	if err != nil {
		return fmt.Errorf("checking serial locations: %w", err)
	}

	for _, serial := range serials {
		if loc, ok := locations[Canonical(s.mode, serial)]; ok {
			return fmt.Errorf("serial %s in %s: %w", serial, loc, ErrDuplicateSerial)
		}
	}

	now := time.Now()
	rows := make([]StockMeter, len(params.Meters))

	for i, m := range params.Meters {
		rows[i] = StockMeter{
			SerialNumber: strings.TrimSpace(m.SerialNumber),
			Type:         strings.TrimSpace(m.Type),
			AddedBy:      actor.ID,
			AdderName:    actor.Name,
			AddedAt:      now,
		}
	}

	if err := tx.InsertStock(ctx, rows); err != nil {
		return fmt.Errorf("inserting stock: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit add meters: %w", err)
	}

	s.cache.Invalidate()

	return nil
}

type AssignParams struct {
	ActorID        uuid.UUID
	IdempotencyKey uuid.UUID
	AgentID        uuid.UUID
	Serials        []string
}

// AssignToAgent moves stock meters into an agent's consigned inventory:
// insert the inventory entries, delete the stock rows, record the audit
// row, all in one transaction.
func (s *Service) AssignToAgent(ctx context.Context, params AssignParams) ([]AgentInventoryEntry, error) {
	if len(params.Serials) == 0 {
		return nil, &ValidationError{Field: "serials", Reason: "at least one serial required"}
	}

	actor, err := s.actor(ctx, params.ActorID)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.Begin(ctx, params.Serials)
	if err != nil {
		return nil, fmt.Errorf("begin assignment: %w", err)
	}
	defer tx.Rollback()

	if err := tx.RecordOperation(ctx, params.IdempotencyKey, "assign_to_agent"); err != nil {
		return nil, err
	}

	stock, err := tx.StockBySerials(ctx, params.Serials)
	if err != nil {
		return nil, fmt.Errorf("fetching stock: %w", err)
	}

	if missing := missingSerials(s.mode, params.Serials, stockSerials(stock)); len(missing) > 0 {
		return nil, fmt.Errorf("not in stock: %s: %w", strings.Join(missing, ", "), ErrNotFound)
	}

	now := time.Now()
	entries := make([]AgentInventoryEntry, len(stock))

	for i, m := range stock {
		entries[i] = AgentInventoryEntry{
			SerialNumber: m.SerialNumber,
			Type:         m.Type,
			AgentID:      params.AgentID,
			AssignedAt:   now,
		}
	}

	if err := tx.InsertAgentInventory(ctx, entries); err != nil {
		return nil, fmt.Errorf("inserting agent inventory: %w", err)
	}

	if _, err := tx.DeleteStock(ctx, params.Serials); err != nil {
		return nil, fmt.Errorf("deleting stock: %w", err)
	}

	audit := &AgentAudit{
		ID:         uuid.New(),
		AgentID:    params.AgentID,
		Action:     AuditAssigned,
		Serials:    params.Serials,
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		RecordedAt: now,
	}
	if err := tx.InsertAudit(ctx, audit); err != nil {
		return nil, fmt.Errorf("recording audit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit assignment: %w", err)
	}

	s.cache.Invalidate()

	return entries, nil
}

// SaleSource names where the sold meters are drawn from.
type SaleSource string

const (
	SaleFromStock SaleSource = "stock"
	SaleFromAgent SaleSource = "agent"
)

type SaleItem struct {
	SerialNumber string
	Type         string
	UnitPrice    decimal.Decimal
}

type SaleDetails struct {
	Destination     string
	Recipient       string
	CustomerContact string
	CustomerType    string
	CustomerCounty  string
	SaleDate        time.Time
}

type SellParams struct {
	ActorID        uuid.UUID
	IdempotencyKey uuid.UUID
	Source         SaleSource
	AgentID        uuid.UUID // required when Source is SaleFromAgent
	Details        SaleDetails
	Items          []SaleItem
}

type SaleResult struct {
	Transaction SalesTransaction
	Batches     []SaleBatch
}

// Sell finalizes a sale: one SaleBatch per meter type under a single parent
// SalesTransaction, each serial deleted from its current location and
// inserted into sold_meters. The whole sale commits or none of it does.
func (s *Service) Sell(ctx context.Context, params SellParams) (*SaleResult, error) {
	if len(params.Items) == 0 {
		return nil, &ValidationError{Field: "items", Reason: "at least one meter required"}
	}

	if params.Source == SaleFromAgent && params.AgentID == uuid.Nil {
		return nil, &ValidationError{Field: "agent_id", Reason: "required when selling from agent inventory"}
	}

	// A batch carries one unit price, so every item of a type must agree.
	pricePerType := make(map[string]decimal.Decimal, len(params.Items))

	for _, it := range params.Items {
		if it.UnitPrice.IsNegative() || it.UnitPrice.IsZero() {
			return nil, &ValidationError{Field: "unit_price", Reason: "must be positive"}
		}

		if prev, ok := pricePerType[it.Type]; ok && !prev.Equal(it.UnitPrice) {
			return nil, &ValidationError{
				Field:  "unit_price",
				Reason: fmt.Sprintf("type %s priced at both %s and %s in one sale", it.Type, prev, it.UnitPrice),
			}
		}

		pricePerType[it.Type] = it.UnitPrice
	}

	actor, err := s.actor(ctx, params.ActorID)
	if err != nil {
		return nil, err
	}

	serials := make([]string, len(params.Items))
	for i, it := range params.Items {
		serials[i] = it.SerialNumber
	}

	tx, err := s.repo.Begin(ctx, serials)
	if err != nil {
		return nil, fmt.Errorf("begin sale: %w", err)
	}
	defer tx.Rollback()

	if err := tx.RecordOperation(ctx, params.IdempotencyKey, "sell"); err != nil {
		return nil, err
	}

	if err := s.consumeForSale(ctx, tx, params, serials); err != nil {
		return nil, err
	}

	saleDate := params.Details.SaleDate
	if saleDate.IsZero() {
		saleDate = time.Now()
	}

	st := SalesTransaction{
		ID:              uuid.New(),
		ReferenceNumber: newReferenceNumber(saleDate),
		CreatedBy:       actor.ID,
		CreatedAt:       time.Now(),
	}
	if err := tx.InsertSalesTransaction(ctx, &st); err != nil {
		return nil, fmt.Errorf("inserting sales transaction: %w", err)
	}

	// One batch per meter type, in first-seen order.
	groups, order := groupByType(params.Items)
	batches := make([]SaleBatch, 0, len(order))

	for _, meterType := range order {
		items := groups[meterType]

		batch := SaleBatch{
			ID:              uuid.New(),
			TransactionID:   st.ID,
			MeterType:       meterType,
			BatchAmount:     len(items),
			UnitPrice:       items[0].UnitPrice,
			TotalPrice:      items[0].UnitPrice.Mul(decimal.NewFromInt(int64(len(items)))),
			UserID:          actor.ID,
			UserName:        actor.Name,
			Destination:     params.Details.Destination,
			Recipient:       params.Details.Recipient,
			CustomerType:    params.Details.CustomerType,
			CustomerCounty:  params.Details.CustomerCounty,
			CustomerContact: params.Details.CustomerContact,
			SaleDate:        saleDate,
		}
		if err := tx.InsertSaleBatch(ctx, &batch); err != nil {
			return nil, fmt.Errorf("inserting sale batch: %w", err)
		}

		sold := make([]SoldMeter, len(items))
		for i, it := range items {
			sold[i] = SoldMeter{
				SerialNumber:    it.SerialNumber,
				SoldAt:          saleDate,
				SoldBy:          actor.ID,
				Destination:     params.Details.Destination,
				Recipient:       params.Details.Recipient,
				CustomerContact: params.Details.CustomerContact,
				CustomerType:    params.Details.CustomerType,
				CustomerCounty:  params.Details.CustomerCounty,
				UnitPrice:       it.UnitPrice,
				BatchID:         batch.ID,
				Status:          SoldActive,
			}
		}

		if err := tx.InsertSold(ctx, sold); err != nil {
			return nil, fmt.Errorf("inserting sold meters: %w", err)
		}

		batches = append(batches, batch)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit sale: %w", err)
	}

	s.cache.Invalidate()

	return &SaleResult{Transaction: st, Batches: batches}, nil
}

// consumeForSale removes the serials from their current location, verifying
// every one of them is actually there.
func (s *Service) consumeForSale(ctx context.Context, tx LifecycleTx, params SellParams, serials []string) error {
	switch params.Source {
	case SaleFromStock:
		stock, err := tx.StockBySerials(ctx, serials)
		if err != nil {
			return fmt.Errorf("fetching stock: %w", err)
		}

		if missing := missingSerials(s.mode, serials, stockSerials(stock)); len(missing) > 0 {
			return fmt.Errorf("not in stock: %s: %w", strings.Join(missing, ", "), ErrNotFound)
		}

		if _, err := tx.DeleteStock(ctx, serials); err != nil {
			return fmt.Errorf("deleting stock: %w", err)
		}

	case SaleFromAgent:
		entries, err := tx.AgentEntriesBySerials(ctx, params.AgentID, serials)
		if err != nil {
			return fmt.Errorf("fetching agent inventory: %w", err)
		}

		held := make([]string, len(entries))
		for i, e := range entries {
			held[i] = e.SerialNumber
		}

		if missing := missingSerials(s.mode, serials, held); len(missing) > 0 {
			return fmt.Errorf("not held by agent: %s: %w", strings.Join(missing, ", "), ErrNotFound)
		}

		if _, err := tx.DeleteAgentInventory(ctx, params.AgentID, serials); err != nil {
			return fmt.Errorf("deleting agent inventory: %w", err)
		}

	default:
		return &ValidationError{Field: "source", Reason: "must be stock or agent"}
	}

	return nil
}

type ReturnFromAgentParams struct {
	ActorID        uuid.UUID
	IdempotencyKey uuid.UUID
	AgentID        uuid.UUID
	Serials        []string
}

// ReturnFromAgent is the inverse of assignment: inventory entries become
// stock rows again, attributed to the returner.
func (s *Service) ReturnFromAgent(ctx context.Context, params ReturnFromAgentParams) error {
	if len(params.Serials) == 0 {
		return &ValidationError{Field: "serials", Reason: "at least one serial required"}
	}

	actor, err := s.actor(ctx, params.ActorID)
	if err != nil {
		return err
	}

	tx, err := s.repo.Begin(ctx, params.Serials)
	if err != nil {
		return fmt.Errorf("begin agent return: %w", err)
	}
	defer tx.Rollback()

	if err := tx.RecordOperation(ctx, params.IdempotencyKey, "return_from_agent"); err != nil {
		return err
	}

	if err := s.restoreFromAgent(ctx, tx, params.AgentID, params.Serials, actor.ID, actor.Name); err != nil {
		return err
	}

	audit := &AgentAudit{
		ID:         uuid.New(),
		AgentID:    params.AgentID,
		Action:     AuditReturned,
		Serials:    params.Serials,
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		RecordedAt: time.Now(),
	}
	if err := tx.InsertAudit(ctx, audit); err != nil {
		return fmt.Errorf("recording audit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit agent return: %w", err)
	}

	s.cache.Invalidate()

	return nil
}

// restoreFromAgent moves the serials from an agent's inventory back into
// stock within the caller's transaction.
func (s *Service) restoreFromAgent(ctx context.Context, tx LifecycleTx, agentID uuid.UUID, serials []string, returnerID uuid.UUID, returnerName string) error {
	entries, err := tx.AgentEntriesBySerials(ctx, agentID, serials)
	if err != nil {
		return fmt.Errorf("fetching agent inventory: %w", err)
	}

	held := make([]string, len(entries))
	for i, e := range entries {
		held[i] = e.SerialNumber
	}

	if missing := missingSerials(s.mode, serials, held); len(missing) > 0 {
		return fmt.Errorf("not held by agent: %s: %w", strings.Join(missing, ", "), ErrNotFound)
	}

	now := time.Now()
	restored := make([]StockMeter, len(entries))

	for i, e := range entries {
		restored[i] = StockMeter{
			SerialNumber: e.SerialNumber,
			Type:         e.Type,
			AddedBy:      returnerID,
			AdderName:    returnerName,
			AddedAt:      now,
		}
	}

	if err := tx.InsertStock(ctx, restored); err != nil {
		return fmt.Errorf("restoring stock: %w", err)
	}

	if _, err := tx.DeleteAgentInventory(ctx, agentID, serials); err != nil {
		return fmt.Errorf("deleting agent inventory: %w", err)
	}

	return nil
}

type SoldReturn struct {
	SerialNumber      string
	Faulty            bool
	FaultDescription  string
	ReplacementSerial string // optional, only meaningful when Faulty
}

type ReturnSoldParams struct {
	ActorID        uuid.UUID
	IdempotencyKey uuid.UUID
	Returns        []SoldReturn
}

// ReturnSold processes customer returns of sold meters. Healthy returns go
// straight back to stock; faulty returns open a pending FaultyReturn and
// flip the sold row to faulty, or to replaced when a replacement serial is
// consumed from stock in its place.
func (s *Service) ReturnSold(ctx context.Context, params ReturnSoldParams) error {
	if len(params.Returns) == 0 {
		return &ValidationError{Field: "returns", Reason: "at least one return required"}
	}

	actor, err := s.actor(ctx, params.ActorID)
	if err != nil {
		return err
	}

	serials := make([]string, 0, len(params.Returns)*2)
	for _, r := range params.Returns {
		serials = append(serials, r.SerialNumber)
		if r.ReplacementSerial != "" {
			serials = append(serials, r.ReplacementSerial)
		}
	}

	tx, err := s.repo.Begin(ctx, serials)
	if err != nil {
		return fmt.Errorf("begin sold return: %w", err)
	}
	defer tx.Rollback()

	if err := tx.RecordOperation(ctx, params.IdempotencyKey, "return_sold"); err != nil {
		return err
	}

	for _, r := range params.Returns {
		if err := s.returnOneSold(ctx, tx, r, actor.ID, actor.Name); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit sold return: %w", err)
	}

	s.cache.Invalidate()

	return nil
}

func (s *Service) returnOneSold(ctx context.Context, tx LifecycleTx, r SoldReturn, actorID uuid.UUID, actorName string) error {
	sold, err := tx.SoldBySerials(ctx, []string{r.SerialNumber})
	if err != nil {
		return fmt.Errorf("fetching sold meter: %w", err)
	}

	if len(sold) == 0 {
		return fmt.Errorf("sold meter %s: %w", r.SerialNumber, ErrNotFound)
	}

	sm := sold[0]
	now := time.Now()

	if !r.Faulty {
		// Healthy: back into stock, sold row removed.
		restored := StockMeter{
			SerialNumber: sm.SerialNumber,
			Type:         sm.MeterType,
			AddedBy:      actorID,
			AdderName:    actorName,
			AddedAt:      now,
		}
		if err := tx.InsertStock(ctx, []StockMeter{restored}); err != nil {
			return fmt.Errorf("restoring stock: %w", err)
		}

		if err := tx.DeleteSold(ctx, sm.SerialNumber); err != nil {
			return fmt.Errorf("deleting sold meter: %w", err)
		}

		return nil
	}

	fr := &FaultyReturn{
		ID:               uuid.New(),
		SerialNumber:     sm.SerialNumber,
		Type:             sm.MeterType,
		ReturnedBy:       actorID,
		ReturnerName:     actorName,
		ReturnedAt:       now,
		FaultDescription: r.FaultDescription,
		Status:           FaultPending,
		OriginalSaleID:   sm.BatchID,
	}
	if err := tx.InsertFaultyReturn(ctx, fr); err != nil {
		return fmt.Errorf("inserting faulty return: %w", err)
	}

	if r.ReplacementSerial == "" {
		// Sold row stays, flagged faulty.
		if err := tx.MarkSoldFaulty(ctx, sm.SerialNumber); err != nil {
			return fmt.Errorf("marking sold faulty: %w", err)
		}

		return nil
	}

	// Replacement: the new serial is consumed from stock and the sold row
	// records the swap without reversing the original sale.
	replacement, err := tx.StockBySerials(ctx, []string{r.ReplacementSerial})
	if err != nil {
		return fmt.Errorf("fetching replacement: %w", err)
	}

	if len(replacement) == 0 {
		return fmt.Errorf("replacement %s not in stock: %w", r.ReplacementSerial, ErrNotFound)
	}

	if _, err := tx.DeleteStock(ctx, []string{r.ReplacementSerial}); err != nil {
		return fmt.Errorf("consuming replacement stock: %w", err)
	}

	if err := tx.MarkSoldReplaced(ctx, sm.SerialNumber, replacement[0].SerialNumber, actorID, now); err != nil {
		return fmt.Errorf("marking sold replaced: %w", err)
	}

	return nil
}

type ResolveFaultParams struct {
	ActorID        uuid.UUID
	IdempotencyKey uuid.UUID
	FaultID        uuid.UUID
	Outcome        FaultStatus
}

// ResolveFault settles a pending faulty return: repaired meters re-enter
// stock and the faulty row is removed; unrepairable (or re-pended) returns
// only change status.
func (s *Service) ResolveFault(ctx context.Context, params ResolveFaultParams) error {
	switch params.Outcome {
	case FaultRepaired, FaultUnrepairable, FaultPending:
	default:
		return &ValidationError{Field: "outcome", Reason: "must be repaired, unrepairable or pending"}
	}

	actor, err := s.actor(ctx, params.ActorID)
	if err != nil {
		return err
	}

	fr, err := s.repo.GetFaultyReturn(ctx, params.FaultID)
	if err != nil {
		return err
	}

	tx, err := s.repo.Begin(ctx, []string{fr.SerialNumber})
	if err != nil {
		return fmt.Errorf("begin fault resolution: %w", err)
	}
	defer tx.Rollback()

	if err := tx.RecordOperation(ctx, params.IdempotencyKey, "resolve_fault"); err != nil {
		return err
	}

	if params.Outcome != FaultRepaired {
		if err := tx.SetFaultStatus(ctx, fr.ID, params.Outcome); err != nil {
			return fmt.Errorf("updating fault status: %w", err)
		}
	} else {
		repaired := StockMeter{
			SerialNumber: fr.SerialNumber,
			Type:         fr.Type,
			AddedBy:      actor.ID,
			AdderName:    actor.Name,
			AddedAt:      time.Now(),
		}
		if err := tx.InsertStock(ctx, []StockMeter{repaired}); err != nil {
			return fmt.Errorf("restoring repaired stock: %w", err)
		}

		if err := tx.DeleteFaultyReturn(ctx, fr.ID); err != nil {
			return fmt.Errorf("deleting faulty return: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit fault resolution: %w", err)
	}

	s.cache.Invalidate()

	return nil
}

type DeleteAgentParams struct {
	ActorID        uuid.UUID
	IdempotencyKey uuid.UUID
	AgentID        uuid.UUID
	ScannedSerials []string // physically verified, restored to stock
	Unscanned      []string // unaccounted for, written off
}

type DeleteAgentResult struct {
	Restored   int
	WrittenOff int
}

// DeleteAgent dissolves an agent: scanned serials are restored to stock,
// unscanned ones are written off (inventory rows deleted without
// restoration), then the agent row and its audit trail are removed.
func (s *Service) DeleteAgent(ctx context.Context, params DeleteAgentParams) (*DeleteAgentResult, error) {
	actor, err := s.actor(ctx, params.ActorID)
	if err != nil {
		return nil, err
	}

	all := make([]string, 0, len(params.ScannedSerials)+len(params.Unscanned))
	all = append(all, params.ScannedSerials...)
	all = append(all, params.Unscanned...)

	tx, err := s.repo.Begin(ctx, all)
	if err != nil {
		return nil, fmt.Errorf("begin agent deletion: %w", err)
	}
	defer tx.Rollback()

	if err := tx.RecordOperation(ctx, params.IdempotencyKey, "delete_agent"); err != nil {
		return nil, err
	}

	result := &DeleteAgentResult{}

	if len(params.ScannedSerials) > 0 {
		if err := s.restoreFromAgent(ctx, tx, params.AgentID, params.ScannedSerials, actor.ID, actor.Name); err != nil {
			return nil, err
		}

		result.Restored = len(params.ScannedSerials)
	}

	if len(params.Unscanned) > 0 {
		deleted, err := tx.DeleteAgentInventory(ctx, params.AgentID, params.Unscanned)
		if err != nil {
			return nil, fmt.Errorf("writing off inventory: %w", err)
		}

		result.WrittenOff = deleted

		audit := &AgentAudit{
			ID:         uuid.New(),
			AgentID:    params.AgentID,
			Action:     AuditWrittenOff,
			Serials:    params.Unscanned,
			ActorID:    actor.ID,
			ActorName:  actor.Name,
			RecordedAt: time.Now(),
		}
		if err := tx.InsertAudit(ctx, audit); err != nil {
			return nil, fmt.Errorf("recording write-off audit: %w", err)
		}
	}

	// The agent row cannot go while inventory still references it; every
	// held serial must be either scanned back or written off.
	leftover, err := tx.AgentInventorySerials(ctx, params.AgentID)
	if err != nil {
		return nil, fmt.Errorf("checking leftover inventory: %w", err)
	}

	if len(leftover) > 0 {
		return nil, &ValidationError{
			Field:  "serials",
			Reason: fmt.Sprintf("agent still holds unaccounted meters: %s", strings.Join(leftover, ", ")),
		}
	}

	if err := tx.DeleteAgentAudit(ctx, params.AgentID); err != nil {
		return nil, fmt.Errorf("deleting agent audit: %w", err)
	}

	if err := tx.DeleteAgentRecord(ctx, params.AgentID); err != nil {
		return nil, fmt.Errorf("deleting agent: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit agent deletion: %w", err)
	}

	s.cache.Invalidate()

	return result, nil
}

func newReferenceNumber(saleDate time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("ST-%s-%s", saleDate.Format("20060102"), suffix)
}

func groupByType(items []SaleItem) (map[string][]SaleItem, []string) {
	groups := make(map[string][]SaleItem)

	var order []string

	for _, it := range items {
		if _, ok := groups[it.Type]; !ok {
			order = append(order, it.Type)
		}

		groups[it.Type] = append(groups[it.Type], it)
	}

	return groups, order
}

func stockSerials(meters []StockMeter) []string {
	serials := make([]string, len(meters))
	for i, m := range meters {
		serials[i] = m.SerialNumber
	}

	return serials
}

// missingSerials reports which of wanted are absent from present, compared
// under the configured match mode.
func missingSerials(mode MatchMode, wanted, present []string) []string {
	have := make(map[string]struct{}, len(present))
	for _, s := range present {
		have[Canonical(mode, s)] = struct{}{}
	}

	var missing []string

	for _, s := range wanted {
		if _, ok := have[Canonical(mode, s)]; !ok {
			missing = append(missing, s)
		}
	}

	return missing
}
