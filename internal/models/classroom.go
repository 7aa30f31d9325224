package models

// ClassroomStatus reports the Google Classroom integration state.
type ClassroomStatus struct {
	IsConnected bool   `json:"isConnected"`
	LastSync    string `json:"lastSync"`
}

// ActionResult is the acknowledgement returned by backend actions.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
