// Package view implements the pure filter/sort/paginate pipeline applied to
// record collections. It never fails: malformed criteria act as no
// constraint.
package view

import (
	"sort"
	"strings"
	"time"

	"github.com/opsdeck/backoffice/internal/records"
)

const (
	// SentinelAll is the criterion value meaning "no constraint".
	SentinelAll = "all"

	DefaultPageSize = 10
)

// DateRange matches records created within [From, To], inclusive on both
// ends. A range with only one bound set is ignored entirely.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func (r DateRange) complete() bool {
	return !r.From.IsZero() && !r.To.IsZero()
}

// Criteria combine with AND semantics. Empty or "all" values are no-ops.
// Criteria are immutable per evaluation and replaced wholesale on change.
type Criteria struct {
	// Equals matches field values by exact equality (status, enums).
	Equals map[string]string `json:"equals,omitempty"`
	// Contains matches string fields by case-insensitive substring.
	Contains map[string]string `json:"contains,omitempty"`
	// Flags matches boolean fields by equality.
	Flags map[string]bool `json:"flags,omitempty"`
	// Created constrains the record creation instant.
	Created *DateRange `json:"created,omitempty"`
	// Search spans the domain's fixed search fields, OR within, AND with
	// the rest.
	Search string `json:"search,omitempty"`
}

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

type Sort struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

type Page struct {
	Number int `json:"number"`
	Size   int `json:"size"`
}

type Result struct {
	Items []records.Record `json:"items"`
	// TotalCount is the filtered length before slicing.
	TotalCount int `json:"total_count"`
	// Page is the effective page number after clamping.
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
}

// View computes the visible page of a collection. Pure: the input slice is
// never modified.
func View(recs []records.Record, c Criteria, s Sort, p Page) Result {
	filtered := make([]records.Record, 0, len(recs))
	for _, rec := range recs {
		if matches(rec, c) {
			filtered = append(filtered, rec)
		}
	}

	if s.Field != "" {
		sortRecords(filtered, s)
	}

	size := p.Size
	if size <= 0 {
		size = DefaultPageSize
	}

	totalPages := (len(filtered) + size - 1) / size
	maxPage := totalPages
	if maxPage < 1 {
		maxPage = 1
	}
	page := p.Number
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}

	start := (page - 1) * size
	end := start + size
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Result{
		Items:      filtered[start:end],
		TotalCount: len(filtered),
		Page:       page,
		TotalPages: totalPages,
	}
}

func matches(rec records.Record, c Criteria) bool {
	for field, want := range c.Equals {
		if noConstraint(want) {
			continue
		}
		value, ok := rec.Field(field)
		if !ok {
			continue
		}
		str, ok := value.(string)
		if !ok {
			continue
		}
		if str != want {
			return false
		}
	}

	for field, want := range c.Contains {
		if noConstraint(want) {
			continue
		}
		value, ok := rec.Field(field)
		if !ok {
			continue
		}
		str, ok := value.(string)
		if !ok {
			continue
		}
		if !strings.Contains(strings.ToLower(str), strings.ToLower(want)) {
			return false
		}
	}

	for field, want := range c.Flags {
		value, ok := rec.Field(field)
		if !ok {
			continue
		}
		flag, ok := value.(bool)
		if !ok {
			continue
		}
		if flag != want {
			return false
		}
	}

	// Both bounds required; a single bound does not constrain.
	if c.Created != nil && c.Created.complete() {
		created := rec.RecordCreatedAt()
		if created.Before(c.Created.From) || created.After(c.Created.To) {
			return false
		}
	}

	if c.Search != "" {
		needle := strings.ToLower(c.Search)
		found := false
		for _, text := range rec.SearchText() {
			if strings.Contains(strings.ToLower(text), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

func noConstraint(v string) bool {
	return v == "" || v == SentinelAll
}

func sortRecords(recs []records.Record, s Sort) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, _ := recs[i].Field(s.Field)
		b, _ := recs[j].Field(s.Field)
		cmp := compareValues(a, b)
		if s.Direction == Descending {
			return cmp > 0
		}
		return cmp < 0
	})
}

// compareValues is type-aware: numbers numerically, times as instants,
// everything else case-sensitive lexicographic. A missing value sorts last
// ascending.
func compareValues(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return 1
	}
	if b == nil {
		return -1
	}

	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			}
			return 0
		}
	}

	if at, aok := a.(time.Time); aok {
		if bt, bok := b.(time.Time); bok {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			}
			return 0
		}
	}

	if ab, aok := a.(bool); aok {
		if bb, bok := b.(bool); bok {
			switch {
			case ab == bb:
				return 0
			case bb:
				return -1
			}
			return 1
		}
	}

	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return strings.Compare(as, bs)
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
