package notes

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/notegrid/notegrid-go/internal/model"
)

func sampleNotes() []model.Note {
	return []model.Note{
		{ID: "1", Title: "first", Priority: model.PriorityHigh},
		{ID: "2", Title: "second", Priority: model.PriorityUrgent},
		{ID: "3", Title: "third", Priority: model.PriorityLow},
	}
}

func TestInsert_Appends(t *testing.T) {
	c := NewCollection()
	c.Reset(sampleNotes())

	err := c.Insert(model.Note{ID: "4", Title: "fourth", Priority: model.PriorityLow})
	require.NoError(t, err)

	all := c.All()
	require.Len(t, all, 4)
	require.Equal(t, "4", all[3].ID)
}

func TestInsert_DuplicateID(t *testing.T) {
	c := NewCollection()
	c.Reset(sampleNotes())

	err := c.Insert(model.Note{ID: "2", Title: "dup"})
	require.ErrorIs(t, err, ErrDuplicateID)
	require.Equal(t, 3, c.Len())
}

func TestInsertThenRemove_RoundTrip(t *testing.T) {
	original := sampleNotes()
	c := NewCollection()
	c.Reset(original)

	require.NoError(t, c.Insert(model.Note{ID: "9", Title: "temp"}))
	c.Remove("9")

	require.Equal(t, original, c.All())
}

func TestReplace_PreservesPosition(t *testing.T) {
	c := NewCollection()
	c.Reset(sampleNotes())

	updated := model.Note{ID: "2", Title: "rewritten", Priority: model.PriorityHigh}
	require.NoError(t, c.Replace(updated))

	all := c.All()
	require.Equal(t, "1", all[0].ID)
	require.Equal(t, updated, all[1])
	require.Equal(t, "3", all[2].ID)
}

func TestReplace_MissingID(t *testing.T) {
	c := NewCollection()
	c.Reset(sampleNotes())

	err := c.Replace(model.Note{ID: "404", Title: "ghost"})
	require.ErrorIs(t, err, ErrNoteMissing)
	require.Equal(t, sampleNotes(), c.All())
}

func TestRemove_AbsentIsNoop(t *testing.T) {
	c := NewCollection()
	c.Reset(sampleNotes())

	c.Remove("404")
	require.Equal(t, sampleNotes(), c.All())
}

func TestAll_ReturnsCopy(t *testing.T) {
	c := NewCollection()
	c.Reset(sampleNotes())

	all := c.All()
	all[0].Title = "mutated"

	require.Equal(t, "first", c.All()[0].Title)
}

func TestCache_GetCreatesOnce(t *testing.T) {
	cache := NewCache()

	a := cache.Get("u1")
	b := cache.Get("u1")
	require.Same(t, a, b)

	require.NotSame(t, a, cache.Get("u2"))
}

func TestCache_Drop(t *testing.T) {
	cache := NewCache()

	col := cache.Get("u1")
	require.NoError(t, col.Insert(model.Note{ID: "1"}))

	cache.Drop("u1")
	require.Equal(t, 0, cache.Get("u1").Len())
}
