package item

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastAndNext(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) time.Time { return now.Add(d) }

	slots := []BookingSlot{
		{ID: 1, BookerID: 10, Start: at(-72 * time.Hour), End: at(-48 * time.Hour)},
		{ID: 2, BookerID: 11, Start: at(-2 * time.Hour), End: at(2 * time.Hour)},
		{ID: 3, BookerID: 12, Start: at(48 * time.Hour), End: at(72 * time.Hour)},
		{ID: 4, BookerID: 13, Start: at(24 * time.Hour), End: at(30 * time.Hour)},
		{ID: 5, BookerID: 14, Start: now, End: at(time.Hour)},
	}

	last, next := LastAndNext(slots, now)
	require.NotNil(t, last)
	require.NotNil(t, next)
	assert.Equal(t, BookingRef{ID: 2, BookerID: 11}, *last, "latest start before now, even if still running")
	assert.Equal(t, BookingRef{ID: 4, BookerID: 13}, *next, "earliest start after now")
}

func TestLastAndNextEmpty(t *testing.T) {
	now := time.Now()

	last, next := LastAndNext(nil, now)
	assert.Nil(t, last)
	assert.Nil(t, next)

	last, next = LastAndNext([]BookingSlot{{ID: 1, Start: now.Add(time.Hour)}}, now)
	assert.Nil(t, last)
	assert.Equal(t, int64(1), next.ID)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\x`, escapeLike(`c:\x`))
	assert.Equal(t, "drill", escapeLike("drill"))
}
