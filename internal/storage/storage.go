//go:generate mockgen -source ./storage.go -destination=./mocks/storage.go -package=mock_storage
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/opsdeck/backoffice/internal/console"
	"github.com/opsdeck/backoffice/internal/records"
	"github.com/opsdeck/backoffice/internal/repository"
	"github.com/opsdeck/backoffice/internal/selection"
)

type OrderRepository interface {
	Create(ctx context.Context, order *repository.Order) error
	GetByID(ctx context.Context, id string) (*repository.Order, error)
	Update(ctx context.Context, order *repository.Order) error
	List(ctx context.Context) ([]*repository.Order, error)
	CountByStatus(ctx context.Context) ([]repository.StatusCount, error)
}

type ReturnRepository interface {
	Create(ctx context.Context, ret *repository.Return) error
	GetByID(ctx context.Context, id string) (*repository.Return, error)
	Update(ctx context.Context, ret *repository.Return) error
	List(ctx context.Context) ([]*repository.Return, error)
	CountByStatus(ctx context.Context) ([]repository.StatusCount, error)
}

type ExchangeRepository interface {
	Create(ctx context.Context, exc *repository.Exchange) error
	GetByID(ctx context.Context, id string) (*repository.Exchange, error)
	Update(ctx context.Context, exc *repository.Exchange) error
	List(ctx context.Context) ([]*repository.Exchange, error)
	CountByStatus(ctx context.Context) ([]repository.StatusCount, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*repository.User, error)
	Update(ctx context.Context, user *repository.User) error
	List(ctx context.Context) ([]*repository.User, error)
	CountByStatus(ctx context.Context) ([]repository.StatusCount, error)
}

type VendorRepository interface {
	GetByID(ctx context.Context, id string) (*repository.Vendor, error)
	List(ctx context.Context) ([]*repository.Vendor, error)
}

type HistoryRepository interface {
	Create(ctx context.Context, entry *repository.HistoryEntry) error
	GetByRecordID(ctx context.Context, domain, recordID string) ([]*repository.HistoryEntry, error)
}

type OperatorRepository interface {
	CreateOperator(ctx context.Context, username, password string) error
	ValidateOperator(ctx context.Context, username, password string) (bool, error)
}

// Storage implements the data-fetch collaborator over the postgres
// repositories.
type Storage struct {
	orders    OrderRepository
	returns   ReturnRepository
	exchanges ExchangeRepository
	users     UserRepository
	vendors   VendorRepository
	history   HistoryRepository
	logger    *zap.Logger

	timeNow func() time.Time
}

var _ console.Fetcher = (*Storage)(nil)

func NewStorage(
	orders OrderRepository,
	returns ReturnRepository,
	exchanges ExchangeRepository,
	users UserRepository,
	vendors VendorRepository,
	history HistoryRepository,
	logger *zap.Logger,
) *Storage {
	return &Storage{
		orders:    orders,
		returns:   returns,
		exchanges: exchanges,
		users:     users,
		vendors:   vendors,
		history:   history,
		logger:    logger,
		timeNow:   func() time.Time { return time.Now().UTC() },
	}
}

// FetchRecords returns the full collection for a domain; filtering, sorting
// and pagination happen in the view pipeline.
func (s *Storage) FetchRecords(ctx context.Context, domain records.Domain, _ console.Query) ([]records.Record, int, error) {
	var (
		recs []records.Record
		err  error
	)

	switch domain {
	case records.DomainOrder:
		var rows []*repository.Order
		rows, err = s.orders.List(ctx)
		recs = ordersToRecords(rows)
	case records.DomainReturn:
		var rows []*repository.Return
		rows, err = s.returns.List(ctx)
		recs = returnsToRecords(rows)
	case records.DomainExchange:
		var rows []*repository.Exchange
		rows, err = s.exchanges.List(ctx)
		recs = exchangesToRecords(rows)
	case records.DomainUser:
		var rows []*repository.User
		rows, err = s.users.List(ctx)
		recs = usersToRecords(rows)
	case records.DomainVendor:
		var rows []*repository.Vendor
		rows, err = s.vendors.List(ctx)
		recs = vendorsToRecords(rows)
	default:
		return nil, 0, fmt.Errorf("unknown domain %q", domain)
	}

	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch %s records: %w", domain, err)
	}
	return recs, len(recs), nil
}

// FetchStatistics aggregates status counts and their shares for a domain.
func (s *Storage) FetchStatistics(ctx context.Context, domain records.Domain) (console.Statistics, error) {
	var (
		counts []repository.StatusCount
		err    error
	)

	switch domain {
	case records.DomainOrder:
		counts, err = s.orders.CountByStatus(ctx)
	case records.DomainReturn:
		counts, err = s.returns.CountByStatus(ctx)
	case records.DomainExchange:
		counts, err = s.exchanges.CountByStatus(ctx)
	case records.DomainUser:
		counts, err = s.users.CountByStatus(ctx)
	default:
		return console.Statistics{}, fmt.Errorf("no statistics for domain %q", domain)
	}

	if err != nil {
		return console.Statistics{}, fmt.Errorf("failed to count %s by status: %w", domain, err)
	}

	stats := console.Statistics{
		CountsByStatus: make(map[string]int, len(counts)),
		Rates:          make(map[string]float64, len(counts)),
	}

	total := 0
	for _, c := range counts {
		stats.CountsByStatus[c.Status] = c.Count
		total += c.Count
	}
	if total > 0 {
		for _, c := range counts {
			stats.Rates[c.Status] = float64(c.Count) / float64(total)
		}
	}

	return stats, nil
}

// MutateRecord applies one action to one record and reports the outcome.
// Mutation failures are outcomes, not errors; the error return is reserved
// for requests that could not be attempted at all.
func (s *Storage) MutateRecord(ctx context.Context, domain records.Domain, id string, action selection.Action, params selection.Params) (selection.MutationResult, error) {
	if action == selection.ActionReassign {
		if _, err := s.vendors.GetByID(ctx, params.VendorID); err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return failure(fmt.Sprintf("vendor %s not found", params.VendorID)), nil
			}
			return failure(err.Error()), nil
		}
	}

	switch domain {
	case records.DomainOrder:
		return s.mutateOrder(ctx, id, action, params)
	case records.DomainReturn:
		return s.mutateReturn(ctx, id, action, params)
	case records.DomainExchange:
		return s.mutateExchange(ctx, id, action, params)
	case records.DomainUser:
		return s.mutateUser(ctx, id, action, params)
	}
	return selection.MutationResult{}, fmt.Errorf("domain %q does not accept mutations", domain)
}

func failure(msg string) selection.MutationResult {
	return selection.MutationResult{ErrorMessage: msg}
}

// statusFor resolves the target status of an action; empty means the status
// is left untouched.
func statusFor(action selection.Action, params selection.Params) string {
	switch action {
	case selection.ActionApprove:
		return "approved"
	case selection.ActionReject:
		return "rejected"
	case selection.ActionUpdateStatus:
		return params.Status
	}
	return ""
}

func (s *Storage) mutateOrder(ctx context.Context, id string, action selection.Action, params selection.Params) (selection.MutationResult, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return failure("order not found"), nil
		}
		return failure(err.Error()), nil
	}

	if status := statusFor(action, params); status != "" {
		order.Status = status
	}
	if action == selection.ActionReassign {
		order.VendorID = params.VendorID
	}
	if params.Note != "" {
		order.Note = params.Note
	}
	order.UpdatedAt = s.timeNow()

	if err := s.orders.Update(ctx, order); err != nil {
		return failure(fmt.Sprintf("failed to update order: %v", err)), nil
	}
	s.recordHistory(ctx, records.DomainOrder, order.ID, order.Status)

	return selection.MutationResult{Success: true, Record: orderToRecord(order)}, nil
}

func (s *Storage) mutateReturn(ctx context.Context, id string, action selection.Action, params selection.Params) (selection.MutationResult, error) {
	ret, err := s.returns.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return failure("return not found"), nil
		}
		return failure(err.Error()), nil
	}

	if status := statusFor(action, params); status != "" {
		ret.Status = status
	}
	if action == selection.ActionReassign {
		ret.VendorID = params.VendorID
	}
	if params.Note != "" {
		ret.Note = params.Note
	}

	if err := s.returns.Update(ctx, ret); err != nil {
		return failure(fmt.Sprintf("failed to update return: %v", err)), nil
	}
	s.recordHistory(ctx, records.DomainReturn, ret.ID, ret.Status)

	return selection.MutationResult{Success: true, Record: returnToRecord(ret)}, nil
}

// mutateExchange is a two-domain write when approving: the exchange status
// plus the linked order. The writes are independent; if the order write
// fails the exchange stays approved and the result degrades to a warning.
func (s *Storage) mutateExchange(ctx context.Context, id string, action selection.Action, params selection.Params) (selection.MutationResult, error) {
	exc, err := s.exchanges.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return failure("exchange not found"), nil
		}
		return failure(err.Error()), nil
	}

	if status := statusFor(action, params); status != "" {
		exc.Status = status
	}
	if action == selection.ActionReassign {
		exc.VendorID = params.VendorID
	}
	if params.Note != "" {
		exc.Note = params.Note
	}

	if err := s.exchanges.Update(ctx, exc); err != nil {
		return failure(fmt.Sprintf("failed to update exchange: %v", err)), nil
	}
	s.recordHistory(ctx, records.DomainExchange, exc.ID, exc.Status)

	result := selection.MutationResult{Success: true, Record: exchangeToRecord(exc)}

	if action == selection.ActionApprove && exc.OrderID != "" {
		if err := s.markOrderExchanged(ctx, exc.OrderID); err != nil {
			result.Warning = fmt.Sprintf(
				"exchange %s approved but order %s was not updated: %v", exc.ID, exc.OrderID, err)
			s.logger.Warn("cross-domain write left records inconsistent",
				zap.String("exchange_id", exc.ID),
				zap.String("order_id", exc.OrderID),
				zap.Error(err))
		}
	}

	return result, nil
}

func (s *Storage) markOrderExchanged(ctx context.Context, orderID string) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	order.Status = "exchanged"
	order.UpdatedAt = s.timeNow()
	if err := s.orders.Update(ctx, order); err != nil {
		return err
	}
	s.recordHistory(ctx, records.DomainOrder, order.ID, order.Status)
	return nil
}

func (s *Storage) mutateUser(ctx context.Context, id string, action selection.Action, params selection.Params) (selection.MutationResult, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return failure("user not found"), nil
		}
		return failure(err.Error()), nil
	}

	status := statusFor(action, params)
	if status == "" {
		return failure(fmt.Sprintf("action %s is not applicable to users", action)), nil
	}
	user.Status = status

	if err := s.users.Update(ctx, user); err != nil {
		return failure(fmt.Sprintf("failed to update user: %v", err)), nil
	}
	s.recordHistory(ctx, records.DomainUser, user.ID, user.Status)

	return selection.MutationResult{Success: true, Record: userToRecord(user)}, nil
}

func (s *Storage) recordHistory(ctx context.Context, domain records.Domain, recordID, status string) {
	entry := &repository.HistoryEntry{
		Domain:    string(domain),
		RecordID:  recordID,
		Status:    status,
		ChangedAt: s.timeNow(),
	}
	if err := s.history.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to record status history",
			zap.String("domain", string(domain)),
			zap.String("record_id", recordID),
			zap.Error(err))
	}
}
