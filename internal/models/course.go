package models

// Course groups assignments under a display name and colour.
type Course struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Color       string       `json:"color"`
	Assignments []Assignment `json:"assignments,omitempty"`
}
