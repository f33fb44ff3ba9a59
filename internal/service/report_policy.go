package service

import (
	"context"
	"fmt"

	"connectrpc.com/connect"

	"github.com/mmynk/expenses/internal/middleware"
	"github.com/mmynk/expenses/internal/models"
	"github.com/mmynk/expenses/internal/storage"
)

// checkReportWrite applies the status lifecycle to a report delta before it
// reaches the store. New reports start as drafts. An update that changes
// status must follow a legal transition from the stored status; if the
// update is stale the check is skipped and the store reports the conflict.
func (s *ExpenseService) checkReportWrite(ctx context.Context, delta *models.GroupReport) error {
	id, stored := models.IDOf(delta)
	if !stored {
		if delta.Status == nil {
			delta.Status = models.StatusDraft.Ptr()
		} else if *delta.Status != models.StatusDraft {
			return fmt.Errorf("%w: new reports start as %s, not %s", ErrIllegalTransition, models.StatusDraft, *delta.Status)
		}
		return nil
	}
	if delta.Status == nil {
		return nil
	}

	current, err := storage.ReadAs(ctx, s.store, models.Ref[models.GroupReport](id))
	if err != nil {
		// the store produces the matching error on write
		return nil
	}
	submitted, ok := models.VersionOf(delta)
	if v, _ := models.VersionOf(current); !ok || submitted != v {
		return nil
	}
	if from := statusOf(current); from != *delta.Status {
		return checkTransition(from, *delta.Status)
	}
	return nil
}

// TransitionReport moves a report along its status lifecycle.
func (s *ExpenseService) TransitionReport(ctx context.Context, req *connect.Request[TransitionReportRequest]) (*connect.Response[TransitionReportResponse], error) {
	s.logger.InfoContext(ctx, "TransitionReport request received",
		"report_id", req.Msg.ReportID,
		"status", req.Msg.Status,
	)

	next, err := models.ParseStatus(req.Msg.Status)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	current, err := storage.ReadAs(ctx, s.store, models.Ref[models.GroupReport](req.Msg.ReportID))
	if err != nil {
		return nil, toConnectError(err)
	}
	version, _ := models.VersionOf(current)
	if req.Msg.Version != nil && *req.Msg.Version != version {
		return nil, toConnectError(&storage.ConflictError{
			ID:        req.Msg.ReportID,
			Submitted: *req.Msg.Version,
			Stored:    version,
		})
	}

	from := statusOf(current)
	if err := checkTransition(from, next); err != nil {
		s.logger.WarnContext(ctx, "TransitionReport refused", "report_id", req.Msg.ReportID, "from", from, "to", next)
		return nil, toConnectError(err)
	}

	edit := models.EditOf(current)
	edit.Status = next.Ptr()
	if next == models.StatusApproved {
		approver := approverOf(ctx, req.Msg)
		if approver == 0 {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%w: approval needs an approver", errInvalidRecord))
		}
		edit.ApprovedSupervisor = models.Ref[models.Person](approver)
	}

	out, err := s.store.Write(ctx, edit)
	if err != nil {
		s.logger.WarnContext(ctx, "TransitionReport failed", "report_id", req.Msg.ReportID, "error", err)
		return nil, toConnectError(err)
	}

	written := ToRecord(out)
	s.record(ctx, written)

	s.logger.InfoContext(ctx, "Report transitioned", "report_id", req.Msg.ReportID, "from", from, "to", next)
	return connect.NewResponse(&TransitionReportResponse{Record: written}), nil
}

// statusOf treats a report without a status as a draft.
func statusOf(report *models.GroupReport) models.Status {
	if report.Status == nil {
		return models.StatusDraft
	}
	return *report.Status
}

func checkTransition(from, to models.Status) error {
	if from.CanTransitionTo(to) {
		return nil
	}
	return fmt.Errorf("%w: %s to %s", ErrIllegalTransition, from, to)
}

// approverOf returns the explicit approver, else the authenticated caller, else 0.
func approverOf(ctx context.Context, req *TransitionReportRequest) int64 {
	if req.ApproverID != nil {
		return *req.ApproverID
	}
	return middleware.GetPersonID(ctx)
}
