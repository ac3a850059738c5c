package console_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/opsdeck/backoffice/internal/console"
	mock_console "github.com/opsdeck/backoffice/internal/console/mocks"
	"github.com/opsdeck/backoffice/internal/privacy"
	"github.com/opsdeck/backoffice/internal/records"
	"github.com/opsdeck/backoffice/internal/selection"
	"github.com/opsdeck/backoffice/internal/view"
)

func newTestConsole(t *testing.T) (*console.Console, *mock_console.MockFetcher, *records.Store) {
	t.Helper()
	ctrl := gomock.NewController(t)
	fetcher := mock_console.NewMockFetcher(ctrl)

	store := records.NewStore(zap.NewNop())
	gate := privacy.NewGate(privacy.NewPolicy(), zap.NewNop())
	c := console.New(store, fetcher, gate, 10*time.Millisecond, zap.NewNop())
	t.Cleanup(c.Shutdown)

	return c, fetcher, store
}

func makeOrders(n int) []records.Record {
	out := make([]records.Record, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, records.Order{
			ID:        string(rune('a'+i)) + "-order",
			Status:    "pending",
			CreatedAt: time.Date(2024, 3, i+1, 0, 0, 0, 0, time.UTC),
		})
	}
	return out
}

func TestConsoleRefreshPopulatesStore(t *testing.T) {
	c, fetcher, store := newTestConsole(t)

	orders := makeOrders(3)
	fetcher.EXPECT().
		FetchRecords(gomock.Any(), records.DomainOrder, gomock.Any()).
		Return(orders, len(orders), nil)

	require.NoError(t, c.Refresh(context.Background(), records.DomainOrder))
	assert.Equal(t, 3, store.Count(records.DomainOrder))
}

func TestConsoleRefreshFailureKeepsOldData(t *testing.T) {
	c, fetcher, store := newTestConsole(t)
	store.ReplaceAll(records.DomainOrder, makeOrders(2))

	fetcher.EXPECT().
		FetchRecords(gomock.Any(), records.DomainOrder, gomock.Any()).
		Return(nil, 0, errors.New("connection refused"))

	err := c.Refresh(context.Background(), records.DomainOrder)
	assert.Error(t, err)

	// The stale collection stays visible until a refresh succeeds.
	assert.Equal(t, 2, store.Count(records.DomainOrder))
}

func TestConsoleSwitchDomain(t *testing.T) {
	c, _, _ := newTestConsole(t)

	c.ToggleSelect("ord-1")
	require.Equal(t, []string{"ord-1"}, c.SelectedIDs())

	require.NoError(t, c.SwitchDomain(records.DomainReturn))
	assert.Equal(t, records.DomainReturn, c.ActiveDomain())

	// Switching tabs drops the selection.
	assert.Empty(t, c.SelectedIDs())

	assert.Error(t, c.SwitchDomain(records.Domain("warehouse")))
	assert.Equal(t, records.DomainReturn, c.ActiveDomain())
}

func TestConsoleVisiblePageAppliesViewState(t *testing.T) {
	c, _, store := newTestConsole(t)
	store.ReplaceAll(records.DomainOrder, makeOrders(25))

	c.SetPageSize(records.DomainOrder, 10)
	c.SetPage(records.DomainOrder, 3)

	result := c.VisiblePage(records.DomainOrder)
	assert.Equal(t, 3, result.Page)
	assert.Len(t, result.Items, 5)
	assert.Equal(t, 25, result.TotalCount)
}

func TestConsoleVisiblePageSyncsClampedPage(t *testing.T) {
	c, _, store := newTestConsole(t)
	store.ReplaceAll(records.DomainOrder, makeOrders(5))

	c.SetPageSize(records.DomainOrder, 10)
	c.SetPage(records.DomainOrder, 40)

	result := c.VisiblePage(records.DomainOrder)
	assert.Equal(t, 1, result.Page)

	// The clamped page number sticks for the next read.
	again := c.VisiblePage(records.DomainOrder)
	assert.Equal(t, 1, again.Page)
}

func TestConsoleSetCriteriaResetsPage(t *testing.T) {
	c, _, store := newTestConsole(t)
	store.ReplaceAll(records.DomainOrder, makeOrders(25))

	c.SetPage(records.DomainOrder, 3)
	c.SetCriteria(records.DomainOrder, view.Criteria{Equals: map[string]string{"status": "pending"}})

	result := c.VisiblePage(records.DomainOrder)
	assert.Equal(t, 1, result.Page)
}

func TestConsoleSelectAllVisible(t *testing.T) {
	c, _, store := newTestConsole(t)
	store.ReplaceAll(records.DomainOrder, makeOrders(25))
	c.SetPageSize(records.DomainOrder, 10)

	selected := c.SelectAllVisible()

	// Only the visible page is selected, never the whole filtered set.
	assert.Len(t, selected, 10)
	assert.Len(t, c.SelectedIDs(), 10)
}

func TestConsoleBulkApplyRefreshesActiveView(t *testing.T) {
	c, fetcher, store := newTestConsole(t)
	store.ReplaceAll(records.DomainOrder, makeOrders(2))

	c.ToggleSelect("a-order")
	c.ToggleSelect("b-order")

	fetcher.EXPECT().
		MutateRecord(gomock.Any(), records.DomainOrder, "a-order", selection.ActionApprove, selection.Params{}).
		Return(selection.MutationResult{Success: true}, nil)
	fetcher.EXPECT().
		MutateRecord(gomock.Any(), records.DomainOrder, "b-order", selection.ActionApprove, selection.Params{}).
		Return(selection.MutationResult{Success: true}, nil)
	fetcher.EXPECT().
		FetchRecords(gomock.Any(), records.DomainOrder, gomock.Any()).
		Return(makeOrders(2), 2, nil)

	result, err := c.BulkApply(context.Background(), selection.ActionApprove, selection.Params{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Succeeded)
	assert.Empty(t, c.SelectedIDs())
}

func TestConsoleBulkApplyRefreshFailureDegrades(t *testing.T) {
	c, fetcher, _ := newTestConsole(t)
	c.ToggleSelect("a-order")

	fetcher.EXPECT().
		MutateRecord(gomock.Any(), records.DomainOrder, "a-order", selection.ActionApprove, selection.Params{}).
		Return(selection.MutationResult{Success: true}, nil)
	fetcher.EXPECT().
		FetchRecords(gomock.Any(), records.DomainOrder, gomock.Any()).
		Return(nil, 0, errors.New("connection refused"))

	// The completed bulk outcome stands even when the follow-up refresh
	// fails.
	result, err := c.BulkApply(context.Background(), selection.ActionApprove, selection.Params{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Succeeded)
}

func TestConsoleBulkApplyValidationSkipsRefresh(t *testing.T) {
	c, _, _ := newTestConsole(t)

	_, err := c.BulkApply(context.Background(), selection.ActionApprove, selection.Params{})
	assert.ErrorIs(t, err, selection.ErrNoSelection)
}

func TestConsolePolling(t *testing.T) {
	c, fetcher, store := newTestConsole(t)

	fetcher.EXPECT().
		FetchRecords(gomock.Any(), records.DomainOrder, gomock.Any()).
		Return(makeOrders(1), 1, nil).
		MinTimes(1)

	ctx := context.Background()
	assert.False(t, c.PollingEnabled(records.DomainOrder))

	c.SetPolling(ctx, records.DomainOrder, true)
	assert.True(t, c.PollingEnabled(records.DomainOrder))

	assert.Eventually(t, func() bool {
		return store.Count(records.DomainOrder) == 1
	}, time.Second, 5*time.Millisecond)

	c.SetPolling(ctx, records.DomainOrder, false)
	assert.False(t, c.PollingEnabled(records.DomainOrder))
}

func TestConsoleStatistics(t *testing.T) {
	c, fetcher, _ := newTestConsole(t)

	want := console.Statistics{
		CountsByStatus: map[string]int{"pending": 3, "delivered": 7},
		Rates:          map[string]float64{"pending": 0.3, "delivered": 0.7},
	}
	fetcher.EXPECT().
		FetchStatistics(gomock.Any(), records.DomainOrder).
		Return(want, nil)

	got, err := c.Statistics(context.Background(), records.DomainOrder)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	fetcher.EXPECT().
		FetchStatistics(gomock.Any(), records.DomainReturn).
		Return(console.Statistics{}, errors.New("connection refused"))

	_, err = c.Statistics(context.Background(), records.DomainReturn)
	assert.Error(t, err)
}
