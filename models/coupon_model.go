package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Coupon codes are stored uppercase-trimmed; normalization happens in the
// coupon service before any read or write.
type Coupon struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Code          string    `gorm:"size:50;not null;unique" json:"code"`
	DiscountType  string    `gorm:"size:20;not null" json:"discount_type"` // percentage, amount
	DiscountValue float64   `gorm:"type:numeric(10,2);not null" json:"discount_value"`

	MaxDiscountAmount *float64 `gorm:"type:numeric(10,2)" json:"max_discount_amount"`
	MinOrderAmount    *float64 `gorm:"type:numeric(10,2)" json:"min_order_amount"`

	UsageLimit *int `json:"usage_limit"`
	UsedCount  int  `gorm:"not null;default:0" json:"used_count"`

	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	IsActive  bool       `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Coupon) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
