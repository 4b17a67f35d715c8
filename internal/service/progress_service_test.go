package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateStreak(t *testing.T) {
	now := time.Date(2025, 3, 14, 16, 45, 0, 0, time.UTC)
	day := func(daysAgo int, hour int) time.Time {
		return now.AddDate(0, 0, -daysAgo).Truncate(24 * time.Hour).Add(time.Duration(hour) * time.Hour)
	}

	tests := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{"no activity", nil, 0},
		{"only today", []time.Time{day(0, 9)}, 1},
		{"three consecutive days", []time.Time{day(0, 9), day(1, 20), day(2, 7)}, 3},
		{"streak anchored on yesterday", []time.Time{day(1, 11), day(2, 8)}, 2},
		{"latest activity two days ago", []time.Time{day(2, 9), day(3, 10)}, 0},
		{"gap breaks the streak", []time.Time{day(0, 9), day(2, 9), day(3, 9)}, 1},
		{"gap after two days", []time.Time{day(0, 9), day(1, 9), day(4, 9), day(5, 9)}, 2},
		{"time of day ignored", []time.Time{day(0, 23), day(1, 0)}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateStreak(tt.dates, now))
		})
	}
}
