package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/study-dashboard/internal/models"
)

func TestDaysUntilDue(t *testing.T) {
	now := fixedNow()

	require.Equal(t, 1, DaysUntilDue(now.Add(12*time.Hour), now))
	require.Equal(t, 1, DaysUntilDue(now.Add(24*time.Hour), now))
	require.Equal(t, 2, DaysUntilDue(now.Add(25*time.Hour), now))
	require.Equal(t, 0, DaysUntilDue(now, now))
	require.Equal(t, -2, DaysUntilDue(now.Add(-48*time.Hour), now))
}

func TestStatusBadge(t *testing.T) {
	now := fixedNow()
	cases := []struct {
		name       string
		assignment models.Assignment
		badge      string
		urgent     bool
	}{
		{"pending due tomorrow", models.Assignment{Status: models.AssignmentStatusPending, DueDate: now.Add(20 * time.Hour)}, BadgeDueSoon, true},
		{"pending overdue", models.Assignment{Status: models.AssignmentStatusPending, DueDate: now.Add(-72 * time.Hour)}, BadgeDueSoon, true},
		{"pending next week", models.Assignment{Status: models.AssignmentStatusPending, DueDate: now.Add(7 * 24 * time.Hour)}, BadgePending, false},
		{"completed overdue", models.Assignment{Status: models.AssignmentStatusCompleted, DueDate: now.Add(-72 * time.Hour)}, BadgeCompleted, false},
		{"completed due soon", models.Assignment{Status: models.AssignmentStatusCompleted, DueDate: now.Add(time.Hour)}, BadgeCompleted, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.badge, StatusBadge(tc.assignment, now))
			require.Equal(t, tc.urgent, IsUrgent(tc.assignment, now))
		})
	}
}

func TestCompletionPercentage(t *testing.T) {
	require.Equal(t, 0.0, CompletionPercentage(0, 0))
	require.Equal(t, 50.0, CompletionPercentage(2, 4))
	require.Equal(t, 100.0, CompletionPercentage(3, 3))
	require.InDelta(t, 33.333, CompletionPercentage(1, 3), 0.001)
}

func TestScoreBandAndRounding(t *testing.T) {
	require.Equal(t, BandHigh, ScoreBand(80))
	require.Equal(t, BandMedium, ScoreBand(79.9))
	require.Equal(t, BandMedium, ScoreBand(60))
	require.Equal(t, BandLow, ScoreBand(59.99))

	require.Equal(t, 73, roundHalfUp(72.5))
	require.Equal(t, 72, roundHalfUp(72.49))
	require.Equal(t, 0, roundHalfUp(-0.5))
}

func TestDateFormatting(t *testing.T) {
	due := time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC)

	require.Equal(t, "Friday, March 14, 2025 at 11:59 PM", formatDueDate(due))
	require.Equal(t, "3/14/2025", formatShortDate(due))
	require.Equal(t, "Mar 14, 2025 11:59 PM", formatTimestamp(due))
	require.Empty(t, formatDueDate(time.Time{}))
}
