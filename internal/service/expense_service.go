package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/expenses/internal/calculator"
	"github.com/mmynk/expenses/internal/models"
	"github.com/mmynk/expenses/internal/storage"
)

// ExpenseService exposes the entity store over Connect.
type ExpenseService struct {
	store   storage.EntityStore
	journal storage.Journal
	logger  *slog.Logger
}

// NewExpenseService creates an ExpenseService. journal may be nil, in
// which case writes are not journaled and History is unavailable.
func NewExpenseService(store storage.EntityStore, journal storage.Journal, logger *slog.Logger) *ExpenseService {
	return &ExpenseService{
		store:   store,
		journal: journal,
		logger:  logger,
	}
}

// Write creates or partially updates a record.
func (s *ExpenseService) Write(ctx context.Context, req *connect.Request[WriteRequest]) (*connect.Response[WriteResponse], error) {
	rec := req.Msg.Record
	s.logger.InfoContext(ctx, "Write request received", "kind", rec.Kind, "id", optional(rec.ID), "version", optional(rec.Version))

	delta, err := rec.Entity()
	if err != nil {
		return nil, toConnectError(err)
	}
	if report, ok := delta.(*models.GroupReport); ok {
		if err := s.checkReportWrite(ctx, report); err != nil {
			s.logger.WarnContext(ctx, "Write refused", "kind", rec.Kind, "id", optional(rec.ID), "error", err)
			return nil, toConnectError(err)
		}
	}

	out, err := s.store.Write(ctx, delta)
	if err != nil {
		s.logger.WarnContext(ctx, "Write failed", "kind", rec.Kind, "id", optional(rec.ID), "error", err)
		return nil, toConnectError(err)
	}

	written := ToRecord(out)
	s.record(ctx, written)

	s.logger.InfoContext(ctx, "Write successful", "kind", written.Kind, "id", *written.ID, "version", *written.Version)
	return connect.NewResponse(&WriteResponse{Record: written}), nil
}

// Read returns the record with the given kind and id.
func (s *ExpenseService) Read(ctx context.Context, req *connect.Request[ReadRequest]) (*connect.Response[ReadResponse], error) {
	s.logger.InfoContext(ctx, "Read request received", "kind", req.Msg.Kind, "id", req.Msg.ID)

	ref, err := models.New(req.Msg.Kind)
	if err != nil {
		return nil, toConnectError(err)
	}
	ref = models.Blank(ref, req.Msg.ID, 0)

	out, err := s.store.Read(ctx, ref)
	if err != nil {
		s.logger.WarnContext(ctx, "Read failed", "kind", req.Msg.Kind, "id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ReadResponse{Record: ToRecord(out)}), nil
}

// Lookup returns the record with the given id, whatever its kind.
func (s *ExpenseService) Lookup(ctx context.Context, req *connect.Request[LookupRequest]) (*connect.Response[LookupResponse], error) {
	s.logger.InfoContext(ctx, "Lookup request received", "id", req.Msg.ID)

	out, err := s.store.Lookup(ctx, req.Msg.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "Lookup failed", "id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&LookupResponse{Record: ToRecord(out)}), nil
}

// FindByKey queries a secondary index.
func (s *ExpenseService) FindByKey(ctx context.Context, req *connect.Request[FindByKeyRequest]) (*connect.Response[FindByKeyResponse], error) {
	s.logger.InfoContext(ctx, "FindByKey request received", "index", req.Msg.Index, "key", req.Msg.Key)

	ids, err := s.store.FindByKey(ctx, storage.Index(req.Msg.Index), req.Msg.Key)
	if err != nil {
		s.logger.WarnContext(ctx, "FindByKey failed", "index", req.Msg.Index, "error", err)
		return nil, toConnectError(err)
	}

	records := make([]*Record, 0, len(ids))
	for _, id := range ids {
		out, err := s.store.Lookup(ctx, id)
		if err != nil {
			return nil, toConnectError(err)
		}
		records = append(records, ToRecord(out))
	}

	if ids == nil {
		ids = []int64{}
	}
	s.logger.InfoContext(ctx, "FindByKey successful", "index", req.Msg.Index, "count", len(ids))
	return connect.NewResponse(&FindByKeyResponse{IDs: ids, Records: records}), nil
}

// List returns every record of a kind.
func (s *ExpenseService) List(ctx context.Context, req *connect.Request[ListRequest]) (*connect.Response[ListResponse], error) {
	s.logger.InfoContext(ctx, "List request received", "kind", req.Msg.Kind)

	out, err := s.store.List(ctx, req.Msg.Kind)
	if err != nil {
		return nil, toConnectError(err)
	}

	s.logger.InfoContext(ctx, "List successful", "kind", req.Msg.Kind, "count", len(out))
	return connect.NewResponse(&ListResponse{Records: ToRecords(out)}), nil
}

// ReportTotals sums a report's line items per currency.
func (s *ExpenseService) ReportTotals(ctx context.Context, req *connect.Request[ReportTotalsRequest]) (*connect.Response[ReportTotalsResponse], error) {
	s.logger.InfoContext(ctx, "ReportTotals request received", "report_id", req.Msg.ReportID)

	if _, err := storage.ReadAs(ctx, s.store, models.Ref[models.GroupReport](req.Msg.ReportID)); err != nil {
		return nil, toConnectError(err)
	}

	entities, err := s.store.List(ctx, models.KindLineItem)
	if err != nil {
		return nil, toConnectError(err)
	}

	var items []*models.LineItem
	for _, e := range entities {
		item := e.(*models.LineItem)
		if item.Report == nil {
			continue
		}
		if id, ok := models.IDOf(item.Report); ok && id == req.Msg.ReportID {
			items = append(items, item)
		}
	}

	totals, err := calculator.ReportTotals(items)
	if err != nil {
		s.logger.ErrorContext(ctx, "ReportTotals failed", "report_id", req.Msg.ReportID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.InfoContext(ctx, "ReportTotals successful", "report_id", req.Msg.ReportID, "currencies", len(totals))
	return connect.NewResponse(&ReportTotalsResponse{Totals: totals}), nil
}

// History returns the journaled writes of an entity, oldest first.
func (s *ExpenseService) History(ctx context.Context, req *connect.Request[HistoryRequest]) (*connect.Response[HistoryResponse], error) {
	s.logger.InfoContext(ctx, "History request received", "entity_id", req.Msg.EntityID)

	if s.journal == nil {
		return nil, connect.NewError(connect.CodeUnimplemented, fmt.Errorf("no journal configured"))
	}

	entries, err := s.journal.Entries(ctx, req.Msg.EntityID)
	if err != nil {
		s.logger.ErrorContext(ctx, "History failed", "entity_id", req.Msg.EntityID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	history := make([]HistoryEntry, len(entries))
	for i, entry := range entries {
		var rec Record
		if err := json.Unmarshal(entry.Payload, &rec); err != nil {
			return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("journal entry %s: %w", entry.ID, err))
		}
		history[i] = HistoryEntry{
			ID:         entry.ID,
			Version:    entry.Version,
			Record:     &rec,
			RecordedAt: time.UnixMilli(entry.RecordedAt).UTC(),
		}
	}
	return connect.NewResponse(&HistoryResponse{Entries: history}), nil
}

// record appends an accepted write to the journal. The write is already
// committed, so failures are logged and not returned.
func (s *ExpenseService) record(ctx context.Context, rec *Record) {
	if s.journal == nil {
		return
	}

	payload, err := json.Marshal(rec)
	if err == nil {
		err = s.journal.Append(ctx, &storage.JournalEntry{
			EntityID: *rec.ID,
			Version:  *rec.Version,
			Kind:     rec.Kind,
			Payload:  payload,
		})
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Journal append failed", "id", *rec.ID, "version", *rec.Version, "error", err)
	}
}

// optional unwraps a pointer for logging; unset values log as nil.
func optional[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
