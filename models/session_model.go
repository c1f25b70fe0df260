package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Session struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID  `gorm:"not null" json:"user_id"`
	TherapistID *uuid.UUID `json:"therapist_id"`
	ServiceID   uuid.UUID  `gorm:"not null" json:"service_id"`

	Motivation          string   `gorm:"type:text;not null" json:"motivation"`
	StrugglingAreas     []string `gorm:"serializer:json" json:"struggling_areas"`
	OtherArea           *string  `gorm:"size:255" json:"other_area"`
	PreferredMentorType string   `gorm:"size:20;not null" json:"preferred_mentor_type"` // male, female, no-preference
	PreferredLanguage   string   `gorm:"size:50;not null" json:"preferred_language"`
	CommunicationMode   string   `gorm:"size:20;not null" json:"communication_mode"` // video-meeting, phone-call

	Date time.Time `gorm:"not null" json:"date"`
	Time string    `gorm:"size:20;not null" json:"time"`

	// Amount is always server-derived by the pricing service.
	Amount        float64 `gorm:"type:numeric(10,2);not null" json:"amount"`
	PaymentStatus string  `gorm:"size:20;not null;default:'pending'" json:"payment_status"` // pending, paid, failed
	PaymentID     *string `gorm:"size:255" json:"payment_id"`
	OrderID       *string `gorm:"size:255;uniqueIndex" json:"order_id"`
	CouponCode    *string `gorm:"size:50" json:"coupon_code"`

	Status string `gorm:"size:20;not null;default:'pending'" json:"status"` // pending, assigned, completed

	User      User    `gorm:"foreignkey:UserID" json:"user,omitempty"`
	Therapist *User   `gorm:"foreignkey:TherapistID" json:"therapist,omitempty"`
	Service   Service `gorm:"foreignkey:ServiceID" json:"service,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
