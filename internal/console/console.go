//go:generate mockgen -source ./console.go -destination=./mocks/console.go -package=mock_console
package console

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/opsdeck/backoffice/internal/metrics"
	"github.com/opsdeck/backoffice/internal/poller"
	"github.com/opsdeck/backoffice/internal/privacy"
	"github.com/opsdeck/backoffice/internal/records"
	"github.com/opsdeck/backoffice/internal/selection"
	"github.com/opsdeck/backoffice/internal/view"
)

// Query is the record query handed to the data-fetch collaborator.
type Query struct {
	Criteria view.Criteria `json:"criteria"`
	Sort     view.Sort     `json:"sort"`
	Page     view.Page     `json:"page"`
}

type Statistics struct {
	CountsByStatus map[string]int     `json:"counts_by_status"`
	Rates          map[string]float64 `json:"rates"`
}

// Fetcher is the external data collaborator the core consumes but does not
// implement.
type Fetcher interface {
	FetchRecords(ctx context.Context, domain records.Domain, q Query) ([]records.Record, int, error)
	FetchStatistics(ctx context.Context, domain records.Domain) (Statistics, error)
	selection.Mutator
}

type viewState struct {
	criteria view.Criteria
	sort     view.Sort
	page     view.Page
	poll     *poller.Scheduler
}

// Console owns the per-domain view state and orchestrates the record store,
// the filter pipeline, the selection set, the polling scheduler and the
// access-control gate. It is the surface UI collaborators consume.
type Console struct {
	store   *records.Store
	fetcher Fetcher
	gate    *privacy.Gate
	logger  *zap.Logger

	mu     sync.Mutex
	active records.Domain
	views  map[records.Domain]*viewState

	sel  *selection.Selection
	bulk *selection.Orchestrator
}

func New(store *records.Store, fetcher Fetcher, gate *privacy.Gate, pollInterval time.Duration, logger *zap.Logger) *Console {
	c := &Console{
		store:   store,
		fetcher: fetcher,
		gate:    gate,
		logger:  logger,
		active:  records.DomainOrder,
		views:   make(map[records.Domain]*viewState),
	}

	for _, domain := range records.ViewableDomains {
		domain := domain
		c.views[domain] = &viewState{
			page: view.Page{Number: 1, Size: view.DefaultPageSize},
			poll: poller.NewScheduler(pollInterval, func(ctx context.Context) error {
				return c.Refresh(ctx, domain)
			}, logger),
		}
	}

	c.sel = selection.NewSelection(c.active)
	c.bulk = selection.NewOrchestrator(c.sel, fetcher, logger)

	return c
}

func (c *Console) viewFor(domain records.Domain) (*viewState, bool) {
	vs, ok := c.views[domain]
	return vs, ok
}

func (c *Console) ActiveDomain() records.Domain {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// SwitchDomain changes the active tab and clears the selection.
func (c *Console) SwitchDomain(domain records.Domain) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.views[domain]; !ok {
		return fmt.Errorf("domain %q is not viewable", domain)
	}
	c.active = domain
	c.sel.Reset(domain)
	return nil
}

// SetCriteria replaces the filter criteria wholesale and resets to the first
// page.
func (c *Console) SetCriteria(domain records.Domain, criteria view.Criteria) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if vs, ok := c.viewFor(domain); ok {
		vs.criteria = criteria
		vs.page.Number = 1
	}
}

func (c *Console) SetSort(domain records.Domain, s view.Sort) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if vs, ok := c.viewFor(domain); ok {
		vs.sort = s
	}
}

func (c *Console) SetPage(domain records.Domain, number int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if vs, ok := c.viewFor(domain); ok {
		if number < 1 {
			number = 1
		}
		vs.page.Number = number
	}
}

func (c *Console) SetPageSize(domain records.Domain, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if vs, ok := c.viewFor(domain); ok && size > 0 {
		vs.page.Size = size
		vs.page.Number = 1
	}
}

// VisiblePage recomputes the current page from the record store and syncs
// the clamped page number back into the view state.
func (c *Console) VisiblePage(domain records.Domain) view.Result {
	c.mu.Lock()
	vs, ok := c.viewFor(domain)
	if !ok {
		c.mu.Unlock()
		return view.Result{Items: []records.Record{}}
	}
	criteria, sortSpec, page := vs.criteria, vs.sort, vs.page
	c.mu.Unlock()

	result := view.View(c.store.GetAll(domain), criteria, sortSpec, page)

	c.mu.Lock()
	vs.page.Number = result.Page
	c.mu.Unlock()

	return result
}

// Refresh re-issues the current query and replaces the store collection with
// the response. Racing refreshes resolve last-write-wins. A failed fetch
// leaves the previous collection in place.
func (c *Console) Refresh(ctx context.Context, domain records.Domain) error {
	c.mu.Lock()
	vs, ok := c.viewFor(domain)
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("domain %q is not viewable", domain)
	}
	q := Query{Criteria: vs.criteria, Sort: vs.sort, Page: vs.page}
	c.mu.Unlock()

	recs, _, err := c.fetcher.FetchRecords(ctx, domain, q)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("refresh").Inc()
		c.logger.Warn("record refresh failed",
			zap.String("domain", string(domain)),
			zap.Error(err))
		return fmt.Errorf("failed to refresh %s records: %w", domain, err)
	}

	c.store.ReplaceAll(domain, recs)
	metrics.RecordRefreshesTotal.WithLabelValues(string(domain)).Inc()
	return nil
}

// SetPolling toggles real-time updates for a domain view.
func (c *Console) SetPolling(ctx context.Context, domain records.Domain, enabled bool) {
	c.mu.Lock()
	vs, ok := c.viewFor(domain)
	c.mu.Unlock()
	if !ok {
		return
	}

	if enabled {
		vs.poll.Enable(ctx)
	} else {
		vs.poll.Disable()
	}
}

func (c *Console) PollingEnabled(domain records.Domain) bool {
	c.mu.Lock()
	vs, ok := c.viewFor(domain)
	c.mu.Unlock()
	if !ok {
		return false
	}
	return vs.poll.Enabled()
}

// Shutdown stops every polling loop; no refetch fires afterwards.
func (c *Console) Shutdown() {
	c.mu.Lock()
	views := make([]*viewState, 0, len(c.views))
	for _, vs := range c.views {
		views = append(views, vs)
	}
	c.mu.Unlock()

	for _, vs := range views {
		vs.poll.Disable()
	}
}

func (c *Console) ToggleSelect(id string) bool {
	return c.sel.Toggle(id)
}

// SelectAllVisible selects exactly the ids on the currently visible page of
// the active domain.
func (c *Console) SelectAllVisible() []string {
	domain := c.ActiveDomain()
	result := c.VisiblePage(domain)

	ids := make([]string, 0, len(result.Items))
	for _, rec := range result.Items {
		ids = append(ids, rec.RecordID())
	}
	c.sel.SelectAllVisible(ids)
	return ids
}

func (c *Console) ClearSelection() {
	c.sel.Clear()
}

func (c *Console) SelectedIDs() []string {
	return c.sel.IDs()
}

// BulkApply runs a bulk action over the selection, then refreshes the active
// view. A refresh failure after a completed bulk action degrades to a log
// line, the per-id outcomes still stand.
func (c *Console) BulkApply(ctx context.Context, action selection.Action, params selection.Params) (*selection.BulkResult, error) {
	domain := c.ActiveDomain()

	result, err := c.bulk.BulkApply(ctx, action, params)
	if err != nil {
		return nil, err
	}

	if err := c.Refresh(ctx, domain); err != nil {
		c.logger.Warn("refresh after bulk action failed",
			zap.String("domain", string(domain)),
			zap.Error(err))
	}
	return result, nil
}

func (c *Console) Statistics(ctx context.Context, domain records.Domain) (Statistics, error) {
	stats, err := c.fetcher.FetchStatistics(ctx, domain)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("statistics").Inc()
		return Statistics{}, fmt.Errorf("failed to fetch %s statistics: %w", domain, err)
	}
	return stats, nil
}

// Gate exposes the access-control gate to UI collaborators.
func (c *Console) Gate() *privacy.Gate {
	return c.gate
}
