package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Details     string    `gorm:"type:text" json:"details"`
	GreatFor    string    `gorm:"type:text" json:"great_for"`
	Duration    int       `gorm:"not null" json:"duration"` // minutes
	Price       float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	Mode        string    `gorm:"size:20;not null" json:"mode"` // video-meeting, phone-call
	Tags        []string  `gorm:"serializer:json" json:"tags,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
