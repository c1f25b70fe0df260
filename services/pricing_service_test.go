package services

import (
	"errors"
	"testing"
	"time"

	"github.com/solacecare/counseling_backend/models"
)

func TestPriceSessionWithoutCoupon(t *testing.T) {
	db := setupTestDB(t)
	service := createTestService(t, db, 999)

	quote, err := PriceSession(db, service, nil, time.Now())
	if err != nil {
		t.Fatalf("pricing failed: %v", err)
	}
	if quote.FinalAmount != 999 {
		t.Errorf("expected final amount 999, got %v", quote.FinalAmount)
	}
	if quote.DiscountAmount != 0 {
		t.Errorf("expected no discount, got %v", quote.DiscountAmount)
	}
	if quote.CouponCode != nil {
		t.Errorf("expected no coupon on quote, got %v", *quote.CouponCode)
	}
}

func TestPriceSessionEmptyCodeIgnored(t *testing.T) {
	db := setupTestDB(t)
	service := createTestService(t, db, 499)

	quote, err := PriceSession(db, service, strPtr(""), time.Now())
	if err != nil {
		t.Fatalf("pricing failed: %v", err)
	}
	if quote.FinalAmount != 499 || quote.CouponCode != nil {
		t.Errorf("expected empty code to be ignored, got %+v", quote)
	}
}

func TestPriceSessionPercentageWithCap(t *testing.T) {
	db := setupTestDB(t)
	service := createTestService(t, db, 1000)
	createTestCoupon(t, db, models.Coupon{
		Code:              "HALF",
		DiscountType:      "percentage",
		DiscountValue:     50,
		MaxDiscountAmount: floatPtr(100),
		IsActive:          true,
	})

	quote, err := PriceSession(db, service, strPtr("HALF"), time.Now())
	if err != nil {
		t.Fatalf("pricing failed: %v", err)
	}
	if quote.DiscountAmount != 100 {
		t.Errorf("expected capped discount 100, got %v", quote.DiscountAmount)
	}
	if quote.FinalAmount != 900 {
		t.Errorf("expected final amount 900, got %v", quote.FinalAmount)
	}
	if quote.CouponCode == nil || *quote.CouponCode != "HALF" {
		t.Errorf("expected coupon HALF on quote, got %v", quote.CouponCode)
	}
}

func TestPriceSessionFixedDiscountToZero(t *testing.T) {
	db := setupTestDB(t)
	service := createTestService(t, db, 200)
	createTestCoupon(t, db, models.Coupon{
		Code:          "FREEBIE",
		DiscountType:  "amount",
		DiscountValue: 300,
		IsActive:      true,
	})

	quote, err := PriceSession(db, service, strPtr("FREEBIE"), time.Now())
	if err != nil {
		t.Fatalf("pricing failed: %v", err)
	}
	if quote.DiscountAmount != 200 {
		t.Errorf("expected discount clamped to 200, got %v", quote.DiscountAmount)
	}
	if quote.FinalAmount != 0 {
		t.Errorf("expected final amount 0, got %v", quote.FinalAmount)
	}
}

func TestPriceSessionIneligibleCouponFails(t *testing.T) {
	db := setupTestDB(t)
	service := createTestService(t, db, 500)
	createTestCoupon(t, db, models.Coupon{
		Code:           "TOOBIG",
		DiscountType:   "amount",
		DiscountValue:  50,
		MinOrderAmount: floatPtr(2000),
		IsActive:       true,
	})

	_, err := PriceSession(db, service, strPtr("TOOBIG"), time.Now())
	if !errors.Is(err, ErrCouponBelowMinimum) {
		t.Fatalf("expected ErrCouponBelowMinimum, got %v", err)
	}
}
