package models

import "time"

// MarksEntry is one scored assessment result. Course links by name only.
type MarksEntry struct {
	ID             string    `json:"id"`
	AssignmentName string    `json:"assignmentName"`
	Course         string    `json:"course"`
	MarksObtained  int       `json:"marksObtained"`
	TotalMarks     int       `json:"totalMarks"`
	DateAdded      time.Time `json:"dateAdded"`
}

// Percentage returns the score as a percentage of the total marks.
func (m MarksEntry) Percentage() float64 {
	if m.TotalMarks <= 0 {
		return 0
	}
	return float64(m.MarksObtained) / float64(m.TotalMarks) * 100
}
