package server

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func newRacers() *collection[racer] {
	return newCollection(func(r *racer) int { return r.ID }, func(r *racer, id int) { r.ID = id })
}

func TestCollection(t *testing.T) {
	c := newRacers()
	a := c.insert(racer{Name: "Alice", ID: 99})
	b := c.insert(racer{Name: "Bob"})
	require.Equal(t, 1, a.ID)
	require.Equal(t, 2, b.ID)

	got, ok := c.get(2)
	require.True(t, ok)
	require.Equal(t, "Bob", got.Name)

	updated, found, err := c.update(1, func(r *racer) error {
		r.Points = 10
		r.ID = 7
		return nil
	})
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 1, updated.ID)
	require.Equal(t, 10, updated.Points)

	boom := errors.New("boom")
	_, found, err = c.update(1, func(r *racer) error {
		r.Points = 500
		return boom
	})
	require.True(t, found)
	require.ErrorIs(t, err, boom)
	got, _ = c.get(1)
	require.Equal(t, 10, got.Points)

	_, found, _ = c.update(42, func(*racer) error { return nil })
	require.False(t, found)

	require.Equal(t, 1, c.count(func(r *racer) bool { return r.Points > 0 }))
	found2, ok := c.find(func(r *racer) bool { return r.Name == "Bob" })
	require.True(t, ok)
	require.Equal(t, 2, found2.ID)

	removed, ok := c.remove(1)
	require.True(t, ok)
	require.Equal(t, "Alice", removed.Name)
	_, ok = c.remove(1)
	require.False(t, ok)

	// Ids are never reused.
	require.Equal(t, 3, c.insert(racer{Name: "Carla"}).ID)
	require.Len(t, c.all(), 2)
}
