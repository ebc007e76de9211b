package model

import "time"

// InquiryTypeGeneral is used when the client does not say what they want.
const InquiryTypeGeneral = "general"

// Inquiry is a contact request about a property left by a visitor.
type Inquiry struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PropertyID  uint      `json:"property_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Email       string    `json:"email" gorm:"size:255;not null"`
	Phone       string    `json:"phone,omitempty" gorm:"size:50"`
	Message     string    `json:"message,omitempty" gorm:"type:text"`
	InquiryType string    `json:"inquiry_type" gorm:"size:50;not null"`
	CreatedAt   time.Time `json:"created_at"`
}
