package view

import (
	"testing"
	"time"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"just now", now.Add(-5 * time.Second), "just now"},
		{"seconds", now.Add(-45 * time.Second), "45s ago"},
		{"minutes", now.Add(-10 * time.Minute), "10m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-49 * time.Hour), "2d ago"},
		{"weeks", now.AddDate(0, 0, -16), "2w ago"},
		{"months", now.AddDate(0, -3, 0), "3mo ago"},
		{"years", now.AddDate(-2, 0, 0), "2y ago"},
		{"future clamps to just now", now.Add(time.Hour), "just now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimeAgo(tt.at, now); got != tt.want {
				t.Errorf("TimeAgo(%v) = %q, want %q", tt.at, got, tt.want)
			}
		})
	}
}
