package dto

import (
	"html/template"
	"time"

	"github.com/noah-isme/study-dashboard/internal/markdown"
)

// AssignmentStatusRequest describes the payload for changing an assignment status.
type AssignmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed"`
}

// AssignmentCard is the summary shown in assignment lists and headers.
type AssignmentCard struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Course         string    `json:"course"`
	Status         string    `json:"status"`
	Priority       string    `json:"priority"`
	PriorityLabel  string    `json:"priority_label"`
	DueDate        time.Time `json:"due_date"`
	DueDateLabel   string    `json:"due_date_label"`
	DaysUntilDue   int       `json:"days_until_due"`
	Urgent         bool      `json:"urgent"`
	Badge          string    `json:"badge"`
	RemainingLabel string    `json:"remaining_label,omitempty"`
	HasDownload    bool      `json:"has_download"`
	HasAIResponse  bool      `json:"has_ai_response"`
}

// AssignmentDetail is the full assignment viewer payload.
type AssignmentDetail struct {
	AssignmentCard
	Description       string           `json:"description"`
	DescriptionBlocks []markdown.Block `json:"description_blocks"`
	DescriptionHTML   template.HTML    `json:"-"`
}

// AttachmentFile is a proxied assignment file ready to be streamed to the browser.
type AttachmentFile struct {
	Filename    string
	ContentType string
	Data        []byte
	Inline      bool
}
