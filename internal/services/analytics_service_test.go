package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthBounds(t *testing.T) {
	from, to := MonthBounds(2026, 3)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestMonthBoundsDecemberRollsIntoJanuary(t *testing.T) {
	from, to := MonthBounds(2026, 12)
	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestMonthBoundsCoverWholeMonth(t *testing.T) {
	from, to := MonthBounds(2026, 2)
	lastMoment := time.Date(2026, 2, 28, 23, 59, 59, 999999999, time.UTC)
	assert.True(t, lastMoment.After(from) && lastMoment.Before(to))
	assert.True(t, to.Equal(from.AddDate(0, 1, 0)))
}
