package domain

import (
	"strings"
	"time"
)

// SingletonID is the primary key of the only settings row
const SingletonID uint = 1

// Settings is the outbound email configuration. A nil field is "not configured".
type Settings struct {
	ID            uint      `json:"-" gorm:"primaryKey;autoIncrement:false"`
	SMTPHost      *string   `json:"smtpHost" gorm:"column:smtp_host"`
	SMTPPort      *string   `json:"smtpPort" gorm:"column:smtp_port"`
	SMTPUsername  *string   `json:"smtpUsername" gorm:"column:smtp_username"`
	SMTPPassword  *string   `json:"smtpPassword" gorm:"column:smtp_password"`
	SMTPSecure    *bool     `json:"smtpSecure" gorm:"column:smtp_secure"`
	EmailSubject  *string   `json:"emailSubject" gorm:"column:email_subject;type:text"`
	EmailTemplate *string   `json:"emailTemplate" gorm:"column:email_template;type:text"`
	FromName      *string   `json:"fromName" gorm:"column:from_name"`
	FromEmail     *string   `json:"fromEmail" gorm:"column:from_email"`
	CreatedAt     time.Time `json:"createdAt,omitzero"`
	UpdatedAt     time.Time `json:"updatedAt,omitzero"`
}

func (Settings) TableName() string {
	return "settings"
}

// Normalize maps blank strings to nil, matching what an unset form field means
func (s *Settings) Normalize() {
	s.SMTPHost = nullIfBlank(s.SMTPHost)
	s.SMTPPort = nullIfBlank(s.SMTPPort)
	s.SMTPUsername = nullIfBlank(s.SMTPUsername)
	s.SMTPPassword = nullIfBlank(s.SMTPPassword)
	s.EmailSubject = nullIfBlank(s.EmailSubject)
	s.EmailTemplate = nullIfBlank(s.EmailTemplate)
	s.FromName = nullIfBlank(s.FromName)
	s.FromEmail = nullIfBlank(s.FromEmail)
}

// SMTPConfigured reports whether host, username and password are all set
func (s *Settings) SMTPConfigured() bool {
	return s != nil && s.SMTPHost != nil && s.SMTPUsername != nil && s.SMTPPassword != nil
}

// Clone returns a copy that shares no pointers with s
func (s *Settings) Clone() *Settings {
	if s == nil {
		return nil
	}
	c := *s
	c.SMTPHost = copyPtr(s.SMTPHost)
	c.SMTPPort = copyPtr(s.SMTPPort)
	c.SMTPUsername = copyPtr(s.SMTPUsername)
	c.SMTPPassword = copyPtr(s.SMTPPassword)
	c.SMTPSecure = copyPtr(s.SMTPSecure)
	c.EmailSubject = copyPtr(s.EmailSubject)
	c.EmailTemplate = copyPtr(s.EmailTemplate)
	c.FromName = copyPtr(s.FromName)
	c.FromEmail = copyPtr(s.FromEmail)
	return &c
}

func nullIfBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
