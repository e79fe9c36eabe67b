package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want Date
		ok   bool
	}{
		{name: "roc slash", raw: "113/5/1", want: Date{2024, 5, 1}, ok: true},
		{name: "roc full labels", raw: "中華民國113年5月1日", want: Date{2024, 5, 1}, ok: true},
		{name: "gregorian", raw: "2024-05-01", want: Date{2024, 5, 1}, ok: true},
		{name: "gregorian boundary", raw: "1900/1/2", want: Date{1900, 1, 2}, ok: true},
		{name: "roc boundary", raw: "1899/1/2", want: Date{3810, 1, 2}, ok: true},
		{name: "year only", raw: "113年", want: Date{2024, 1, 1}, ok: true},
		{name: "year month only", raw: "113.7", want: Date{2024, 7, 1}, ok: true},
		{name: "no digits", raw: "未提供", ok: false},
		{name: "empty", raw: "", ok: false},
		{name: "invalid day", raw: "113/2/30", ok: false},
		{name: "invalid month", raw: "113/13/1", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Resolve(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	t.Parallel()

	first, ok := Resolve("110年12月31日")
	require.True(t, ok)
	for i := 0; i < 5; i++ {
		again, ok := Resolve("110年12月31日")
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, "2021-12-31", first.String())
}

func TestDaysUntil(t *testing.T) {
	t.Parallel()

	today := Date{2024, 6, 10}
	assert.Equal(t, 2, today.DaysUntil(Date{2024, 6, 12}))
	assert.Equal(t, -9, today.DaysUntil(Date{2024, 6, 1}))
	assert.Equal(t, 0, today.DaysUntil(today))
	// Across a month boundary.
	assert.Equal(t, 21, today.DaysUntil(Date{2024, 7, 1}))
}

func TestToday(t *testing.T) {
	t.Parallel()

	taipei, err := time.LoadLocation("Asia/Taipei")
	require.NoError(t, err)

	got := Today(taipei)
	now := time.Now().In(taipei)
	assert.Equal(t, now.Year(), got.Year)
	assert.Equal(t, int(now.Month()), got.Month)
	assert.Equal(t, now.Day(), got.Day)
	assert.False(t, got.IsZero())
}
