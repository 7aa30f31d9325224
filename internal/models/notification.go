package models

import "time"

// Notification records a reminder sent to the student.
type Notification struct {
	ID         string    `json:"id"`
	Assignment string    `json:"assignment"`
	Course     string    `json:"course"`
	SentTime   time.Time `json:"sentTime"`
	Channel    string    `json:"channel"`
}
