package dto

// ProgressOverview aggregates assignment completion for the progress tracker.
type ProgressOverview struct {
	Total                int              `json:"total_assignments"`
	Completed            int              `json:"completed_assignments"`
	Pending              int              `json:"pending_assignments"`
	Urgent               int              `json:"urgent_assignments"`
	CompletionPercentage float64          `json:"completion_percentage"`
	ShowCompleted        bool             `json:"show_completed"`
	Assignments          []AssignmentCard `json:"assignments"`
	Courses              []CourseProgress `json:"course_stats"`
}

// CourseProgress captures completion for the assignments of one course.
type CourseProgress struct {
	CourseName string  `json:"course_name"`
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	Percentage float64 `json:"percentage"`
}
