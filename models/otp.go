package models

import "time"

// MailOTP stores a one-time code issued for password reset, keyed by the
// email or phone it was sent to. Rows are deleted on successful verify.
type MailOTP struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Mail      string    `gorm:"index" json:"mail"`
	Phone     string    `gorm:"index" json:"phone"`
	OTP       string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
