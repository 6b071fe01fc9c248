package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Defaults(t *testing.T) {
	ds := Generate(Options{Seed: 42})

	require.Len(t, ds.Bookings, 30)
	require.Len(t, ds.Users, 30)
	assert.Len(t, ds.Reservations, 3)
	assert.Len(t, ds.Lifts, 3)
	assert.Len(t, ds.Incidents, 5)

	first, last := ds.DateRange()
	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), first)
	assert.Equal(t, time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC), last)
}

func TestGenerate_KeysAreUniqueAndResortMajor(t *testing.T) {
	ds := Generate(Options{Seed: 7, Days: 4, Resorts: []string{"A", "B"}})

	seen := make(map[string]bool)
	for i, b := range ds.Bookings {
		key := b.Resort + "|" + b.Date.Format("2006-01-02")
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true

		if i < 4 {
			assert.Equal(t, "A", b.Resort)
		} else {
			assert.Equal(t, "B", b.Resort)
		}
	}
	assert.Len(t, seen, 8)

	for i, u := range ds.Users {
		assert.Equal(t, ds.Bookings[i].Resort, u.Resort)
		assert.True(t, ds.Bookings[i].Date.Equal(u.Date))
	}
}

func TestGenerate_ValueRanges(t *testing.T) {
	ds := Generate(Options{Seed: 99, Days: 60})

	for _, b := range ds.Bookings {
		assert.GreaterOrEqual(t, b.Bookings, 100)
		assert.Less(t, b.Bookings, 250)
	}
	for _, u := range ds.Users {
		assert.GreaterOrEqual(t, u.NewUsers, 20)
		assert.Less(t, u.NewUsers, 60)
		assert.GreaterOrEqual(t, u.ReturningUsers, 50)
		assert.Less(t, u.ReturningUsers, 90)
	}
}

func TestGenerate_SameSeedSameValues(t *testing.T) {
	a := Generate(Options{Seed: 1234})
	b := Generate(Options{Seed: 1234})
	assert.Equal(t, a, b)
}

func TestGenerate_TruncatesStartDate(t *testing.T) {
	ds := Generate(Options{Seed: 1, Days: 1, StartDate: time.Date(2025, time.December, 24, 17, 30, 0, 0, time.UTC)})

	require.NotEmpty(t, ds.Bookings)
	assert.Equal(t, time.Date(2025, time.December, 24, 0, 0, 0, 0, time.UTC), ds.Bookings[0].Date)
	assert.Equal(t, ds.Bookings[0].Date, ds.Incidents[0].Date)
}

func TestDay_UsesUTCDate(t *testing.T) {
	pst := time.FixedZone("PST", -8*60*60)
	assert.Equal(t, time.Date(2025, time.April, 3, 0, 0, 0, 0, time.UTC), Day(time.Date(2025, time.April, 2, 23, 30, 0, 0, pst)))
	assert.Equal(t, time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC), Day(time.Date(2025, time.April, 2, 8, 0, 0, 0, pst)))
}
