//go:generate mockgen -source ./bulk.go -destination=./mocks/bulk.go -package=mock_selection
package selection

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/opsdeck/backoffice/internal/metrics"
	"github.com/opsdeck/backoffice/internal/records"
)

type Action string

const (
	ActionApprove      Action = "approve"
	ActionReject       Action = "reject"
	ActionReassign     Action = "reassign"
	ActionUpdateStatus Action = "status_update"
)

func ParseAction(name string) (Action, bool) {
	switch a := Action(name); a {
	case ActionApprove, ActionReject, ActionReassign, ActionUpdateStatus:
		return a, true
	}
	return "", false
}

// Params carries the action-specific parameters of a bulk request.
type Params struct {
	VendorID string `json:"vendor_id,omitempty"`
	Status   string `json:"status,omitempty"`
	Note     string `json:"note,omitempty"`
}

var (
	ErrNoSelection  = errors.New("bulk action requires a non-empty selection")
	ErrNoAction     = errors.New("bulk action is not set")
	ErrMissingParam = errors.New("bulk action parameter missing")
)

// MutationResult is the outcome of one record mutation. Warning carries a
// degraded-state message when a multi-domain write only partially completed.
type MutationResult struct {
	Success      bool           `json:"success"`
	Record       records.Record `json:"record,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	Warning      string         `json:"warning,omitempty"`
}

type Mutator interface {
	MutateRecord(ctx context.Context, domain records.Domain, id string, action Action, params Params) (MutationResult, error)
}

type ItemOutcome struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Warning string `json:"warning,omitempty"`
}

type BulkResult struct {
	RequestID string        `json:"request_id"`
	Action    Action        `json:"action"`
	Outcomes  []ItemOutcome `json:"outcomes"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
}

const bulkConcurrency = 4

// Orchestrator applies a bulk action across the current selection,
// collecting a per-id outcome. A partial failure never rolls back the
// succeeded subset.
type Orchestrator struct {
	sel     *Selection
	mutator Mutator
	logger  *zap.Logger
}

func NewOrchestrator(sel *Selection, mutator Mutator, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		sel:     sel,
		mutator: mutator,
		logger:  logger,
	}
}

// BulkApply validates the request, issues one mutation per selected id and
// reports per-id outcomes. Validation failures reject the call before any
// mutation is dispatched. The selection is cleared on completion regardless
// of outcome.
func (o *Orchestrator) BulkApply(ctx context.Context, action Action, params Params) (*BulkResult, error) {
	if action == "" {
		return nil, ErrNoAction
	}
	if _, ok := ParseAction(string(action)); !ok {
		return nil, ErrNoAction
	}
	if err := validateParams(action, params); err != nil {
		return nil, err
	}

	ids := o.sel.IDs()
	if len(ids) == 0 {
		return nil, ErrNoSelection
	}

	domain := o.sel.Domain()
	result := &BulkResult{
		RequestID: uuid.NewString(),
		Action:    action,
		Outcomes:  make([]ItemOutcome, len(ids)),
	}

	metrics.BulkActionsTotal.WithLabelValues(string(action)).Inc()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkConcurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			res, err := o.mutator.MutateRecord(gctx, domain, id, action, params)
			outcome := ItemOutcome{ID: id}
			switch {
			case err != nil:
				outcome.Error = err.Error()
			case !res.Success:
				outcome.Error = res.ErrorMessage
			default:
				outcome.Success = true
				outcome.Warning = res.Warning
			}
			result.Outcomes[i] = outcome
			return nil
		})
	}
	// Workers never return errors; per-id failures live in the outcomes.
	_ = g.Wait()

	for _, outcome := range result.Outcomes {
		if outcome.Success {
			result.Succeeded++
		} else {
			result.Failed++
			metrics.BulkItemFailuresTotal.Inc()
		}
	}

	o.sel.Clear()

	o.logger.Info("bulk action applied",
		zap.String("request_id", result.RequestID),
		zap.String("domain", string(domain)),
		zap.String("action", string(action)),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed))

	return result, nil
}

func validateParams(action Action, params Params) error {
	switch action {
	case ActionReassign:
		if params.VendorID == "" {
			return fmt.Errorf("%w: vendor_id is required for reassign", ErrMissingParam)
		}
	case ActionUpdateStatus:
		if params.Status == "" {
			return fmt.Errorf("%w: status is required for status_update", ErrMissingParam)
		}
	}
	return nil
}
