package dto

import "time"

// SettingsUpdateRequest is the buffered settings form submitted on save.
type SettingsUpdateRequest struct {
	Name                    string `json:"name" validate:"max=255"`
	StudentID               string `json:"student_id" validate:"max=64"`
	Email                   string `json:"email" validate:"required,email"`
	NotificationPreferences string `json:"notification_preferences" validate:"required,oneof=email whatsapp both"`
	Theme                   string `json:"theme" validate:"required,oneof=light dark"`
}

// TestNotificationRequest selects the channel for a test notification.
type TestNotificationRequest struct {
	Channel string `json:"channel" validate:"required,oneof=email whatsapp both"`
}

// NotificationView is a sent notification as listed on the settings page.
type NotificationView struct {
	ID           string    `json:"id"`
	Assignment   string    `json:"assignment"`
	Course       string    `json:"course"`
	Channel      string    `json:"channel"`
	ChannelLabel string    `json:"channel_label"`
	SentTime     time.Time `json:"sent_time"`
	SentLabel    string    `json:"sent_label"`
}
