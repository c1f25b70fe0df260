package services

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/solacecare/counseling_backend/models"
	"gorm.io/gorm"
)

var (
	ErrCouponNotFound     = errors.New("invalid coupon code")
	ErrCouponNotStarted   = errors.New("coupon not started yet")
	ErrCouponExpired      = errors.New("coupon expired")
	ErrCouponLimitReached = errors.New("coupon usage limit reached")
	ErrCouponBelowMinimum = errors.New("order amount below minimum")
)

// NormalizeCouponCode is the single source of truth for code normalization;
// both the validation endpoint and the checkout path go through it.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// EvaluateCoupon checks eligibility and computes the discount for the given
// order amount. It is a pure read: usage is consumed separately by
// CommitCouponUsage once the session referencing the coupon is persisted.
func EvaluateCoupon(db *gorm.DB, code string, orderAmount float64, now time.Time) (*models.Coupon, float64, error) {
	var coupon models.Coupon
	err := db.Where("code = ? AND is_active = ?", NormalizeCouponCode(code), true).First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrCouponNotFound
		}
		return nil, 0, err
	}

	if err := CheckCouponEligibility(&coupon, orderAmount, now); err != nil {
		return nil, 0, err
	}

	return &coupon, ComputeDiscount(&coupon, orderAmount), nil
}

func CheckCouponEligibility(coupon *models.Coupon, orderAmount float64, now time.Time) error {
	if coupon.StartDate != nil && now.Before(*coupon.StartDate) {
		return ErrCouponNotStarted
	}
	if coupon.EndDate != nil && now.After(*coupon.EndDate) {
		return ErrCouponExpired
	}
	if coupon.UsageLimit != nil && coupon.UsedCount >= *coupon.UsageLimit {
		return ErrCouponLimitReached
	}
	if coupon.MinOrderAmount != nil && orderAmount < *coupon.MinOrderAmount {
		return ErrCouponBelowMinimum
	}
	return nil
}

// ComputeDiscount returns the discount for an eligible coupon, clamped so it
// never exceeds the order amount and never goes negative.
func ComputeDiscount(coupon *models.Coupon, orderAmount float64) float64 {
	var discount float64
	if coupon.DiscountType == "percentage" {
		discount = orderAmount * coupon.DiscountValue / 100
		if coupon.MaxDiscountAmount != nil {
			discount = math.Min(discount, *coupon.MaxDiscountAmount)
		}
	} else {
		discount = coupon.DiscountValue
	}

	return math.Max(0, math.Min(discount, orderAmount))
}

// CommitCouponUsage consumes one use of the coupon. The guard clause makes the
// increment atomic at the store: concurrent commits near the usage limit
// cannot push used_count past it, the losing update simply matches zero rows.
func CommitCouponUsage(db *gorm.DB, code string) error {
	res := db.Model(&models.Coupon{}).
		Where("code = ? AND (usage_limit IS NULL OR used_count < usage_limit)", NormalizeCouponCode(code)).
		Update("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCouponLimitReached
	}
	return nil
}
