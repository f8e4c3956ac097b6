package components

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rows(titles ...string) []Row {
	out := make([]Row, len(titles))
	for i, title := range titles {
		out[i] = Row{Title: title, Index: i}
	}
	return out
}

func TestSetRowsResetsCursor(t *testing.T) {
	c := NewColumn("Test")
	c.SetRows(rows("a", "b", "c"))
	c.CursorDown()
	c.CursorDown()

	c.SetRows(rows("x", "y"))
	row, ok := c.SelectedRow()
	require.True(t, ok)
	assert.Equal(t, "x", row.Title)
}

func TestAppendRowsKeepsCursor(t *testing.T) {
	c := NewColumn("Test")
	c.SetRows(rows("a", "b", "c"))
	c.CursorToEnd()

	c.AppendRows([]Row{{Title: "d", Index: 3}})

	row, ok := c.SelectedRow()
	require.True(t, ok)
	assert.Equal(t, "c", row.Title, "appending pages must not move the selection")
	assert.Equal(t, 4, c.Len())
}

func TestCursorClampedAtEdges(t *testing.T) {
	c := NewColumn("Test")
	c.SetRows(rows("a", "b"))

	c.CursorUp()
	row, _ := c.SelectedRow()
	assert.Equal(t, "a", row.Title)

	c.CursorToEnd()
	c.CursorDown()
	row, _ = c.SelectedRow()
	assert.Equal(t, "b", row.Title)
	assert.True(t, c.AtEnd())
}

func TestSelectedRowOnEmptyColumn(t *testing.T) {
	c := NewColumn("Test")
	_, ok := c.SelectedRow()
	assert.False(t, ok)
}

func TestFilterNarrowsAndRanks(t *testing.T) {
	c := NewColumn("Test")
	c.SetRows(rows("BBC One", "BBC Two", "Sky Sports", "ESPN"))

	c.StartFilter()
	c.FilterInput().SetValue("bbc")
	c.ApplyFilter()

	assert.Equal(t, 2, c.Len())
	row, ok := c.SelectedRow()
	require.True(t, ok)
	assert.Contains(t, row.Title, "BBC")
}

func TestStopFilterRestoresAllRows(t *testing.T) {
	c := NewColumn("Test")
	c.SetRows(rows("BBC One", "Sky Sports"))

	c.StartFilter()
	c.FilterInput().SetValue("sky")
	c.ApplyFilter()
	require.Equal(t, 1, c.Len())

	c.StopFilter()
	assert.Equal(t, 2, c.Len())
	assert.False(t, c.FilterActive())
}

func TestFilterSelectionMapsToSourceIndex(t *testing.T) {
	c := NewColumn("Test")
	c.SetRows(rows("alpha", "beta", "gamma"))

	c.StartFilter()
	c.FilterInput().SetValue("gam")
	c.ApplyFilter()

	row, ok := c.SelectedRow()
	require.True(t, ok)
	assert.Equal(t, "gamma", row.Title)
	assert.Equal(t, 2, row.Index, "the row keeps its source slice index")
}

func TestFilterHandlesLargeListings(t *testing.T) {
	titles := make([]string, 500)
	for i := range titles {
		titles[i] = fmt.Sprintf("Channel %03d", i)
	}
	titles[123] = "Discovery Science"

	c := NewColumn("Test")
	c.SetRows(rows(titles...))

	c.StartFilter()
	c.FilterInput().SetValue("discovery")
	c.ApplyFilter()

	require.Equal(t, 1, c.Len())
	row, _ := c.SelectedRow()
	assert.Equal(t, 123, row.Index)
}
