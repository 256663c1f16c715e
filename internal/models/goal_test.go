package models

import "testing"

func TestGoalStatus(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		target  float64
		want    string
	}{
		{"halfway", 500, 1000, GoalOnTrack},
		{"above half", 750, 1000, GoalOnTrack},
		{"below half", 499, 1000, GoalBoostNeeded},
		{"nothing saved", 0, 1000, GoalBoostNeeded},
		{"zero target", 0, 0, GoalBoostNeeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GoalStatus(tt.current, tt.target); got != tt.want {
				t.Errorf("GoalStatus(%v, %v) = %q, want %q", tt.current, tt.target, got, tt.want)
			}
		})
	}
}
