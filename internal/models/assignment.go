package models

import "time"

// Assignment status values accepted by the backend.
const (
	AssignmentStatusPending   = "pending"
	AssignmentStatusCompleted = "completed"
)

// Assignment priority values.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Assignment represents a gradable task as served by the backend.
type Assignment struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Course         string    `json:"course"`
	Description    string    `json:"description"`
	DueDate        time.Time `json:"dueDate"`
	Status         string    `json:"status"`
	Priority       string    `json:"priority"`
	DownloadLink   string    `json:"downloadLink,omitempty"`
	AIResponseFile string    `json:"aiResponseFile,omitempty"`
}

// IsCompleted reports whether the assignment has been marked as done.
func (a Assignment) IsCompleted() bool {
	return a.Status == AssignmentStatusCompleted
}

// ToggledStatus returns the status the assignment moves to when toggled.
func (a Assignment) ToggledStatus() string {
	if a.IsCompleted() {
		return AssignmentStatusPending
	}
	return AssignmentStatusCompleted
}

// IsValidAssignmentStatus reports whether status is a known assignment status.
func IsValidAssignmentStatus(status string) bool {
	return status == AssignmentStatusPending || status == AssignmentStatusCompleted
}
