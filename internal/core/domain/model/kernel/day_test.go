package kernel_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOf_NormalizesToUTCMidnight(t *testing.T) {
	zone := time.FixedZone("UTC+5", 5*60*60)
	// 02:30 on the 10th in UTC+5 is still the 9th in UTC.
	instant := time.Date(2026, time.March, 10, 2, 30, 45, 0, zone)

	day := kernel.DayOf(instant)

	assert.Equal(t, "2026-03-09", day.String())
	assert.Equal(t, time.UTC, day.Time().Location())
	assert.Equal(t, 0, day.Time().Hour())
}

func TestDayFromString(t *testing.T) {
	t.Run("parses valid date", func(t *testing.T) {
		day, err := kernel.DayFromString("2026-08-24")
		require.NoError(t, err)
		assert.Equal(t, "2026-08-24", day.String())
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		_, err := kernel.DayFromString("24/08/2026")
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects empty string", func(t *testing.T) {
		_, err := kernel.DayFromString("")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDay_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var day kernel.Day
		require.Error(t, day.Validate())
	})

	t.Run("constructed value is valid", func(t *testing.T) {
		require.NoError(t, kernel.Today().Validate())
	})
}

func TestDay_Arithmetic(t *testing.T) {
	day, err := kernel.DayFromString("2026-08-23")
	require.NoError(t, err)

	next := day.AddDays(1)
	assert.Equal(t, "2026-08-24", next.String())
	assert.True(t, day.Before(next))
	assert.True(t, next.After(day))
	assert.False(t, day.IsEqual(next))
	assert.Equal(t, 1, day.DaysUntil(next))
	assert.Equal(t, -1, next.DaysUntil(day))

	t.Run("crosses month boundary", func(t *testing.T) {
		assert.Equal(t, "2026-09-01", day.AddDays(9).String())
	})

	t.Run("identity", func(t *testing.T) {
		assert.True(t, day.IsEqual(day.AddDays(0)))
	})
}
