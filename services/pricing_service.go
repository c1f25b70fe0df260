package services

import (
	"math"
	"time"

	"github.com/solacecare/counseling_backend/models"
	"gorm.io/gorm"
)

type PriceQuote struct {
	FinalAmount    float64 `json:"final_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	CouponCode     *string `json:"coupon_code,omitempty"`
}

// PriceSession derives the payable amount for a session from the service's
// base price and an optional coupon. The result is the only trusted charge
// amount; client-supplied amounts are never consulted.
func PriceSession(db *gorm.DB, service *models.Service, couponCode *string, now time.Time) (*PriceQuote, error) {
	quote := &PriceQuote{FinalAmount: service.Price}

	if couponCode == nil || *couponCode == "" {
		return quote, nil
	}

	coupon, discount, err := EvaluateCoupon(db, *couponCode, service.Price, now)
	if err != nil {
		return nil, err
	}

	quote.DiscountAmount = discount
	quote.FinalAmount = math.Max(0, service.Price-discount)
	quote.CouponCode = &coupon.Code
	return quote, nil
}
