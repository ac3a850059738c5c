package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdeck/backoffice/internal/records"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC)
}

func testOrders() []records.Record {
	return []records.Record{
		records.Order{
			ID: "ord-1", CustomerName: "Rajesh Sharma", CustomerEmail: "rajesh.sharma@gmail.com",
			Status: "pending", Amount: 2500, PaymentMethod: "card", Prepaid: true, CreatedAt: day(1),
		},
		records.Order{
			ID: "ord-2", CustomerName: "Priya Patel", CustomerEmail: "priya@example.com",
			Status: "delivered", Amount: 999, PaymentMethod: "cod", Prepaid: false, CreatedAt: day(3),
		},
		records.Order{
			ID: "ord-3", CustomerName: "Amit Verma", CustomerEmail: "amit.verma@example.com",
			Status: "pending", Amount: 4200, PaymentMethod: "card", Prepaid: true, CreatedAt: day(5),
		},
		records.Order{
			ID: "ord-4", CustomerName: "Sneha Rao", CustomerEmail: "sneha@example.com",
			Status: "cancelled", Amount: 150, PaymentMethod: "upi", Prepaid: false, CreatedAt: day(7),
		},
	}
}

func ids(result Result) []string {
	out := make([]string, 0, len(result.Items))
	for _, rec := range result.Items {
		out = append(out, rec.RecordID())
	}
	return out
}

func TestViewFiltering(t *testing.T) {
	orders := testOrders()

	tests := []struct {
		name     string
		criteria Criteria
		wantIDs  []string
	}{
		{
			name:     "no criteria returns everything",
			criteria: Criteria{},
			wantIDs:  []string{"ord-1", "ord-2", "ord-3", "ord-4"},
		},
		{
			name:     "exact status match",
			criteria: Criteria{Equals: map[string]string{"status": "pending"}},
			wantIDs:  []string{"ord-1", "ord-3"},
		},
		{
			name:     "all sentinel is a no-op",
			criteria: Criteria{Equals: map[string]string{"status": SentinelAll}},
			wantIDs:  []string{"ord-1", "ord-2", "ord-3", "ord-4"},
		},
		{
			name:     "substring match is case-insensitive",
			criteria: Criteria{Contains: map[string]string{"customer_name": "RAJESH"}},
			wantIDs:  []string{"ord-1"},
		},
		{
			name: "criteria combine with AND",
			criteria: Criteria{
				Equals:   map[string]string{"status": "pending"},
				Contains: map[string]string{"customer_email": "example.com"},
			},
			wantIDs: []string{"ord-3"},
		},
		{
			name:     "boolean flag match",
			criteria: Criteria{Flags: map[string]bool{"prepaid": true}},
			wantIDs:  []string{"ord-1", "ord-3"},
		},
		{
			name:     "date range inclusive on both ends",
			criteria: Criteria{Created: &DateRange{From: day(3), To: day(5)}},
			wantIDs:  []string{"ord-2", "ord-3"},
		},
		{
			name:     "date range with a single bound is ignored",
			criteria: Criteria{Created: &DateRange{From: day(3)}},
			wantIDs:  []string{"ord-1", "ord-2", "ord-3", "ord-4"},
		},
		{
			name:     "search spans id, name and email with OR",
			criteria: Criteria{Search: "verma"},
			wantIDs:  []string{"ord-3"},
		},
		{
			name: "search combines with other criteria via AND",
			criteria: Criteria{
				Search: "example.com",
				Equals: map[string]string{"status": "pending"},
			},
			wantIDs: []string{"ord-3"},
		},
		{
			name:     "unknown field is no constraint",
			criteria: Criteria{Equals: map[string]string{"no_such_field": "x"}},
			wantIDs:  []string{"ord-1", "ord-2", "ord-3", "ord-4"},
		},
		{
			name:     "non-string field with substring criterion is no constraint",
			criteria: Criteria{Contains: map[string]string{"amount": "25"}},
			wantIDs:  []string{"ord-1", "ord-2", "ord-3", "ord-4"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := View(orders, tc.criteria, Sort{}, Page{Number: 1, Size: 50})
			assert.Equal(t, tc.wantIDs, ids(result))
			assert.Equal(t, len(tc.wantIDs), result.TotalCount)
		})
	}
}

func TestViewSorting(t *testing.T) {
	orders := testOrders()

	t.Run("numeric ascending", func(t *testing.T) {
		result := View(orders, Criteria{}, Sort{Field: "amount", Direction: Ascending}, Page{Number: 1, Size: 50})
		assert.Equal(t, []string{"ord-4", "ord-2", "ord-1", "ord-3"}, ids(result))
	})

	t.Run("numeric descending", func(t *testing.T) {
		result := View(orders, Criteria{}, Sort{Field: "amount", Direction: Descending}, Page{Number: 1, Size: 50})
		assert.Equal(t, []string{"ord-3", "ord-1", "ord-2", "ord-4"}, ids(result))
	})

	t.Run("dates compared as instants", func(t *testing.T) {
		result := View(orders, Criteria{}, Sort{Field: "created_at", Direction: Descending}, Page{Number: 1, Size: 50})
		assert.Equal(t, []string{"ord-4", "ord-3", "ord-2", "ord-1"}, ids(result))
	})

	t.Run("strings compared case-sensitively", func(t *testing.T) {
		result := View(orders, Criteria{}, Sort{Field: "customer_name", Direction: Ascending}, Page{Number: 1, Size: 50})
		assert.Equal(t, []string{"ord-3", "ord-2", "ord-1", "ord-4"}, ids(result))
	})

	t.Run("sorting is idempotent", func(t *testing.T) {
		spec := Sort{Field: "status", Direction: Ascending}
		first := View(orders, Criteria{}, spec, Page{Number: 1, Size: 50})
		second := View(first.Items, Criteria{}, spec, Page{Number: 1, Size: 50})
		assert.Equal(t, ids(first), ids(second))
	})

	t.Run("stable for equal keys", func(t *testing.T) {
		result := View(orders, Criteria{}, Sort{Field: "status", Direction: Ascending}, Page{Number: 1, Size: 50})
		// Both pending orders keep their input order.
		assert.Equal(t, []string{"ord-4", "ord-2", "ord-1", "ord-3"}, ids(result))
	})

	t.Run("missing field sorts last ascending", func(t *testing.T) {
		mixed := append(testOrders(), records.Return{ID: "ret-1", Status: "requested", CreatedAt: day(2)})
		result := View(mixed, Criteria{}, Sort{Field: "amount", Direction: Ascending}, Page{Number: 1, Size: 50})
		got := ids(result)
		assert.Equal(t, "ret-1", got[len(got)-1])
	})

	t.Run("input slice is not modified", func(t *testing.T) {
		View(orders, Criteria{}, Sort{Field: "amount", Direction: Descending}, Page{Number: 1, Size: 50})
		assert.Equal(t, "ord-1", orders[0].RecordID())
	})
}

func TestViewPagination(t *testing.T) {
	orders := testOrders()

	t.Run("slices the sorted filtered set", func(t *testing.T) {
		result := View(orders, Criteria{}, Sort{}, Page{Number: 2, Size: 3})
		assert.Equal(t, []string{"ord-4"}, ids(result))
		assert.Equal(t, 4, result.TotalCount)
		assert.Equal(t, 2, result.TotalPages)
	})

	t.Run("total count is independent of page", func(t *testing.T) {
		for page := 1; page <= 3; page++ {
			result := View(orders, Criteria{}, Sort{}, Page{Number: page, Size: 2})
			assert.Equal(t, 4, result.TotalCount)
			assert.LessOrEqual(t, len(result.Items), 2)
		}
	})

	t.Run("page beyond the end clamps to the last page", func(t *testing.T) {
		result := View(orders, Criteria{}, Sort{}, Page{Number: 99, Size: 3})
		assert.Equal(t, 2, result.Page)
		assert.Equal(t, []string{"ord-4"}, ids(result))
	})

	t.Run("page below one clamps to the first page", func(t *testing.T) {
		result := View(orders, Criteria{}, Sort{}, Page{Number: 0, Size: 3})
		assert.Equal(t, 1, result.Page)
		require.Len(t, result.Items, 3)
	})

	t.Run("empty collection yields an empty first page", func(t *testing.T) {
		result := View(nil, Criteria{}, Sort{}, Page{Number: 5, Size: 10})
		assert.Empty(t, result.Items)
		assert.Equal(t, 0, result.TotalCount)
		assert.Equal(t, 1, result.Page)
	})
}
