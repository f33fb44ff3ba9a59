package service

import (
	"time"

	"github.com/mmynk/expenses/internal/calculator"
	"github.com/mmynk/expenses/internal/models"
)

type WriteRequest struct {
	Record *Record `json:"record" validate:"required"`
}

type WriteResponse struct {
	Record *Record `json:"record"`
}

type ReadRequest struct {
	Kind models.Kind `json:"kind" validate:"required,oneof=currency person report line_item"`
	ID   int64       `json:"id" validate:"gt=0"`
}

type ReadResponse struct {
	Record *Record `json:"record"`
}

type LookupRequest struct {
	ID int64 `json:"id" validate:"gt=0"`
}

type LookupResponse struct {
	Record *Record `json:"record"`
}

type FindByKeyRequest struct {
	Index string `json:"index" validate:"required"`
	Key   string `json:"key" validate:"required"`
}

// FindByKeyResponse carries the matching ids and a resolved copy of each.
type FindByKeyResponse struct {
	IDs     []int64   `json:"ids"`
	Records []*Record `json:"records"`
}

type ListRequest struct {
	Kind models.Kind `json:"kind" validate:"required,oneof=currency person report line_item"`
}

type ListResponse struct {
	Records []*Record `json:"records"`
}

// TransitionReportRequest moves a report to a new status. Version, when
// set, must match the stored version. ApproverID is required for approval
// unless the caller is authenticated, in which case the caller approves.
type TransitionReportRequest struct {
	ReportID   int64  `json:"report_id" validate:"gt=0"`
	Version    *int64 `json:"version,omitempty" validate:"omitempty,gte=0"`
	Status     string `json:"status" validate:"required,oneof=draft submitted approved declined paid"`
	ApproverID *int64 `json:"approver_id,omitempty" validate:"omitempty,gt=0"`
}

type TransitionReportResponse struct {
	Record *Record `json:"record"`
}

type ReportTotalsRequest struct {
	ReportID int64 `json:"report_id" validate:"gt=0"`
}

type ReportTotalsResponse struct {
	Totals []calculator.CurrencyTotal `json:"totals"`
}

type HistoryRequest struct {
	EntityID int64 `json:"entity_id" validate:"gt=0"`
}

// HistoryEntry is one accepted write of an entity.
type HistoryEntry struct {
	ID         string    `json:"id"`
	Version    int64     `json:"version"`
	Record     *Record   `json:"record"`
	RecordedAt time.Time `json:"recorded_at"`
}

type HistoryResponse struct {
	Entries []HistoryEntry `json:"entries"`
}

type RegisterRequest struct {
	Login    string `json:"login" validate:"required,max=64"`
	Password string `json:"password" validate:"required"`
}

type RegisterResponse struct {
	Person *Record `json:"person"`
	Token  string  `json:"token"`
}

type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Person *Record `json:"person"`
	Token  string  `json:"token"`
}
