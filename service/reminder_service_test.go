package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextReminderTime(t *testing.T) {
	loc := time.UTC

	t.Run("before the daily slot", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 9, 30, 0, 0, loc)
		next := nextReminderTime(now)
		assert.Equal(t, time.Date(2025, 3, 10, 20, 0, 0, 0, loc), next)
	})

	t.Run("after the daily slot rolls to tomorrow", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 21, 0, 0, 0, loc)
		next := nextReminderTime(now)
		assert.Equal(t, time.Date(2025, 3, 11, 20, 0, 0, 0, loc), next)
	})

	t.Run("exactly at the slot rolls forward", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 20, 0, 0, 0, loc)
		next := nextReminderTime(now)
		assert.True(t, next.After(now))
	})
}
