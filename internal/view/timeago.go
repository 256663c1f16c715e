package view

import (
	"fmt"
	"time"
)

// TimeAgo formats the elapsed time since t as a short human-relative string,
// e.g. "just now", "5m ago", "3d ago", "2mo ago".
func TimeAgo(t time.Time, now time.Time) string {
	elapsed := now.Sub(t)
	if elapsed < 0 {
		elapsed = 0
	}

	switch {
	case elapsed < 10*time.Second:
		return "just now"
	case elapsed < time.Minute:
		return fmt.Sprintf("%ds ago", int(elapsed.Seconds()))
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	case elapsed < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	case elapsed < 30*24*time.Hour:
		return fmt.Sprintf("%dw ago", int(elapsed.Hours()/(24*7)))
	case elapsed < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(elapsed.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy ago", int(elapsed.Hours()/(24*365)))
	}
}
