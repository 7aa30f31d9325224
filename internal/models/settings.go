package models

// Notification channels.
const (
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
	ChannelBoth     = "both"
)

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// UserSettings holds the student's profile and notification preferences.
type UserSettings struct {
	Email                   string `json:"email"`
	NotificationPreferences string `json:"notificationPreferences"`
	Theme                   string `json:"theme"`
	Name                    string `json:"name"`
	StudentID               string `json:"studentId"`
}
