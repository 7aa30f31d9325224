package dto

import "time"

// MarksCreateRequest describes the payload for recording a new marks entry.
type MarksCreateRequest struct {
	AssignmentName string `json:"assignment_name" validate:"required,max=255"`
	Course         string `json:"course" validate:"required,max=255"`
	MarksObtained  *int   `json:"marks_obtained" validate:"required,gte=0"`
	TotalMarks     *int   `json:"total_marks" validate:"required,gt=0"`
}

// MarksUpdateRequest describes the payload for correcting the marks obtained.
type MarksUpdateRequest struct {
	MarksObtained *int `json:"marks_obtained" validate:"required,gte=0"`
}

// MarksSummary is the marks page payload: overall stats, per-course
// averages and the entries table.
type MarksSummary struct {
	TotalEntries   int              `json:"total_entries"`
	AverageScore   int              `json:"average_score"`
	ActiveCourses  int              `json:"active_courses"`
	Courses        []CourseMarks    `json:"courses"`
	SelectedCourse string           `json:"selected_course,omitempty"`
	Entries        []MarksEntryView `json:"entries"`
}

// CourseMarks holds the average score of a course.
type CourseMarks struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Color          string  `json:"color"`
	EntryCount     int     `json:"entry_count"`
	Average        float64 `json:"average"`
	RoundedAverage int     `json:"rounded_average"`
}

// MarksEntryView is one row of the marks table.
type MarksEntryView struct {
	ID                string    `json:"id"`
	AssignmentName    string    `json:"assignment_name"`
	Course            string    `json:"course"`
	MarksObtained     int       `json:"marks_obtained"`
	TotalMarks        int       `json:"total_marks"`
	Percentage        float64   `json:"percentage"`
	RoundedPercentage int       `json:"rounded_percentage"`
	Band              string    `json:"band"`
	DateAdded         time.Time `json:"date_added"`
	DateLabel         string    `json:"date_label"`
}
