package service

import (
	"math"
	"time"

	"github.com/noah-isme/study-dashboard/internal/models"
)

// Status badges shown next to an assignment.
const (
	BadgeCompleted = "Completed"
	BadgeDueSoon   = "Due Soon"
	BadgePending   = "Pending"
)

// Score bands used to colour marks.
const (
	BandHigh   = "high"
	BandMedium = "medium"
	BandLow    = "low"
)

const (
	dueDateLayout   = "Monday, January 2, 2006 at 03:04 PM"
	shortDateLayout = "1/2/2006"
	timestampLayout = "Jan 2, 2006 3:04 PM"
)

// urgentWithinDays is the due-date horizon under which a pending assignment is urgent.
const urgentWithinDays = 1

// DaysUntilDue returns the number of calendar days until due, rounded up.
// Past deadlines yield zero or negative values.
func DaysUntilDue(due, now time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}

// IsUrgent reports whether a pending assignment is due within a day.
func IsUrgent(assignment models.Assignment, now time.Time) bool {
	return !assignment.IsCompleted() && DaysUntilDue(assignment.DueDate, now) <= urgentWithinDays
}

// StatusBadge returns the badge for an assignment. Completed assignments are
// always "Completed", whatever their due date.
func StatusBadge(assignment models.Assignment, now time.Time) string {
	switch {
	case assignment.IsCompleted():
		return BadgeCompleted
	case IsUrgent(assignment, now):
		return BadgeDueSoon
	default:
		return BadgePending
	}
}

// CompletionPercentage returns completed/total*100, or 0 when total is 0.
func CompletionPercentage(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// ScoreBand classifies a percentage score.
func ScoreBand(percentage float64) string {
	switch {
	case percentage >= 80:
		return BandHigh
	case percentage >= 60:
		return BandMedium
	default:
		return BandLow
	}
}

// roundHalfUp rounds like the browser's Math.round: halves go towards +Inf.
func roundHalfUp(value float64) int {
	return int(math.Floor(value + 0.5))
}

func formatDueDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dueDateLayout)
}

func formatShortDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(shortDateLayout)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timestampLayout)
}
