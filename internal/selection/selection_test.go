package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opsdeck/backoffice/internal/records"
)

func TestSelectionToggle(t *testing.T) {
	sel := NewSelection(records.DomainOrder)

	assert.True(t, sel.Toggle("ord-1"))
	assert.True(t, sel.Selected("ord-1"))
	assert.Equal(t, 1, sel.Count())

	assert.False(t, sel.Toggle("ord-1"))
	assert.False(t, sel.Selected("ord-1"))
	assert.Equal(t, 0, sel.Count())
}

func TestSelectionSelectAllVisibleReplaces(t *testing.T) {
	sel := NewSelection(records.DomainOrder)
	sel.Toggle("ord-9")

	sel.SelectAllVisible([]string{"ord-1", "ord-2", "ord-3"})

	// The visible page replaces any previous selection wholesale.
	assert.Equal(t, []string{"ord-1", "ord-2", "ord-3"}, sel.IDs())
	assert.False(t, sel.Selected("ord-9"))
}

func TestSelectionClear(t *testing.T) {
	sel := NewSelection(records.DomainOrder)
	sel.Toggle("ord-1")
	sel.Toggle("ord-2")

	sel.Clear()
	assert.Equal(t, 0, sel.Count())
	assert.Empty(t, sel.IDs())
}

func TestSelectionResetSwitchesDomain(t *testing.T) {
	sel := NewSelection(records.DomainOrder)
	sel.Toggle("ord-1")

	sel.Reset(records.DomainReturn)

	assert.Equal(t, records.DomainReturn, sel.Domain())
	assert.Equal(t, 0, sel.Count())
}

func TestSelectionIDsSorted(t *testing.T) {
	sel := NewSelection(records.DomainOrder)
	sel.Toggle("ord-3")
	sel.Toggle("ord-1")
	sel.Toggle("ord-2")

	assert.Equal(t, []string{"ord-1", "ord-2", "ord-3"}, sel.IDs())
}
