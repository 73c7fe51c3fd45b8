package timefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want string
	}{
		{"afternoon", time.Date(2026, 3, 5, 21, 7, 0, 0, time.UTC), "05-03-2026-09:07pm"},
		{"morning", time.Date(2025, 12, 31, 8, 30, 0, 0, time.UTC), "31-12-2025-08:30am"},
		{"midnight", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "01-01-2024-12:00am"},
		{"noon", time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC), "15-06-2024-12:00pm"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Format(tc.in))
		})
	}
}

func TestNowRoundTrips(t *testing.T) {
	got := Now()

	parsed, err := time.Parse(Layout, got)
	assert.NoError(t, err)
	assert.Equal(t, got, Format(parsed))
}
