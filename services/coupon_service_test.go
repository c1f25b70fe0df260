package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/solacecare/counseling_backend/models"
)

func TestEvaluateCouponNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, _, err := EvaluateCoupon(db, "NOSUCH", 500, time.Now())
	if !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected ErrCouponNotFound, got %v", err)
	}
}

func TestEvaluateCouponInactiveTreatedAsNotFound(t *testing.T) {
	db := setupTestDB(t)
	createTestCoupon(t, db, models.Coupon{
		Code:          "DISABLED",
		DiscountType:  "percentage",
		DiscountValue: 10,
		IsActive:      false,
	})

	_, _, err := EvaluateCoupon(db, "DISABLED", 500, time.Now())
	if !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected ErrCouponNotFound for inactive coupon, got %v", err)
	}
}

func TestEvaluateCouponNormalizesCode(t *testing.T) {
	db := setupTestDB(t)
	createTestCoupon(t, db, models.Coupon{
		Code:          "WELCOME10",
		DiscountType:  "percentage",
		DiscountValue: 10,
		IsActive:      true,
	})

	coupon, discount, err := EvaluateCoupon(db, "  welcome10  ", 500, time.Now())
	if err != nil {
		t.Fatalf("expected coupon to apply, got %v", err)
	}
	if coupon.Code != "WELCOME10" {
		t.Errorf("expected normalized code WELCOME10, got %q", coupon.Code)
	}
	if discount != 50 {
		t.Errorf("expected discount 50, got %v", discount)
	}
}

func TestEvaluateCouponNotStarted(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()
	createTestCoupon(t, db, models.Coupon{
		Code:          "FUTURE",
		DiscountType:  "percentage",
		DiscountValue: 10,
		StartDate:     timePtr(now.Add(24 * time.Hour)),
		IsActive:      true,
	})

	_, _, err := EvaluateCoupon(db, "FUTURE", 500, now)
	if !errors.Is(err, ErrCouponNotStarted) {
		t.Fatalf("expected ErrCouponNotStarted, got %v", err)
	}
}

func TestEvaluateCouponExpired(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()
	createTestCoupon(t, db, models.Coupon{
		Code:          "OLD",
		DiscountType:  "percentage",
		DiscountValue: 10,
		EndDate:       timePtr(now.Add(-24 * time.Hour)),
		IsActive:      true,
	})

	_, _, err := EvaluateCoupon(db, "OLD", 500, now)
	if !errors.Is(err, ErrCouponExpired) {
		t.Fatalf("expected ErrCouponExpired, got %v", err)
	}
}

func TestEvaluateCouponLimitReached(t *testing.T) {
	db := setupTestDB(t)
	createTestCoupon(t, db, models.Coupon{
		Code:          "MAXED",
		DiscountType:  "percentage",
		DiscountValue: 10,
		UsageLimit:    intPtr(3),
		UsedCount:     3,
		IsActive:      true,
	})

	_, _, err := EvaluateCoupon(db, "MAXED", 500, time.Now())
	if !errors.Is(err, ErrCouponLimitReached) {
		t.Fatalf("expected ErrCouponLimitReached, got %v", err)
	}
}

func TestEvaluateCouponBelowMinimum(t *testing.T) {
	db := setupTestDB(t)
	createTestCoupon(t, db, models.Coupon{
		Code:           "BIGSPEND",
		DiscountType:   "amount",
		DiscountValue:  100,
		MinOrderAmount: floatPtr(1000),
		IsActive:       true,
	})

	_, _, err := EvaluateCoupon(db, "BIGSPEND", 999, time.Now())
	if !errors.Is(err, ErrCouponBelowMinimum) {
		t.Fatalf("expected ErrCouponBelowMinimum, got %v", err)
	}

	if _, _, err := EvaluateCoupon(db, "BIGSPEND", 1000, time.Now()); err != nil {
		t.Fatalf("expected coupon to apply at exact minimum, got %v", err)
	}
}

func TestComputeDiscountPercentageCapped(t *testing.T) {
	coupon := &models.Coupon{
		DiscountType:      "percentage",
		DiscountValue:     50,
		MaxDiscountAmount: floatPtr(100),
	}

	if got := ComputeDiscount(coupon, 150); got != 75 {
		t.Errorf("expected uncapped discount 75, got %v", got)
	}
	if got := ComputeDiscount(coupon, 1000); got != 100 {
		t.Errorf("expected cap to apply at 100, got %v", got)
	}
}

func TestComputeDiscountFixedNeverExceedsOrder(t *testing.T) {
	coupon := &models.Coupon{
		DiscountType:  "amount",
		DiscountValue: 300,
	}

	if got := ComputeDiscount(coupon, 200); got != 200 {
		t.Errorf("expected discount clamped to order amount 200, got %v", got)
	}
	if got := ComputeDiscount(coupon, 500); got != 300 {
		t.Errorf("expected full fixed discount 300, got %v", got)
	}
}

func TestCommitCouponUsageIncrements(t *testing.T) {
	db := setupTestDB(t)
	createTestCoupon(t, db, models.Coupon{
		Code:          "TRACKED",
		DiscountType:  "amount",
		DiscountValue: 50,
		UsageLimit:    intPtr(2),
		IsActive:      true,
	})

	if err := CommitCouponUsage(db, "TRACKED"); err != nil {
		t.Fatalf("first commit failed: %v", err)
	}
	if err := CommitCouponUsage(db, "TRACKED"); err != nil {
		t.Fatalf("second commit failed: %v", err)
	}
	if err := CommitCouponUsage(db, "TRACKED"); !errors.Is(err, ErrCouponLimitReached) {
		t.Fatalf("expected ErrCouponLimitReached on third commit, got %v", err)
	}

	var coupon models.Coupon
	if err := db.First(&coupon, "code = ?", "TRACKED").Error; err != nil {
		t.Fatalf("failed to reload coupon: %v", err)
	}
	if coupon.UsedCount != 2 {
		t.Errorf("expected used_count 2, got %d", coupon.UsedCount)
	}
}

func TestCommitCouponUsageUnlimited(t *testing.T) {
	db := setupTestDB(t)
	createTestCoupon(t, db, models.Coupon{
		Code:          "FOREVER",
		DiscountType:  "amount",
		DiscountValue: 50,
		IsActive:      true,
	})

	for i := 0; i < 10; i++ {
		if err := CommitCouponUsage(db, "FOREVER"); err != nil {
			t.Fatalf("commit %d failed: %v", i, err)
		}
	}
}

func TestCommitCouponUsageConcurrent(t *testing.T) {
	db := setupTestDB(t)
	createTestCoupon(t, db, models.Coupon{
		Code:          "RACE",
		DiscountType:  "amount",
		DiscountValue: 50,
		UsageLimit:    intPtr(5),
		IsActive:      true,
	})

	const attempts = 20
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- CommitCouponUsage(db, "RACE")
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, refused int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrCouponLimitReached):
			refused++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if succeeded != 5 {
		t.Errorf("expected exactly 5 successful commits, got %d", succeeded)
	}
	if refused != attempts-5 {
		t.Errorf("expected %d refusals, got %d", attempts-5, refused)
	}

	var coupon models.Coupon
	if err := db.First(&coupon, "code = ?", "RACE").Error; err != nil {
		t.Fatalf("failed to reload coupon: %v", err)
	}
	if coupon.UsedCount != 5 {
		t.Errorf("expected used_count to stop at 5, got %d", coupon.UsedCount)
	}
}

func TestNormalizeCouponCode(t *testing.T) {
	if got := NormalizeCouponCode("  save20 "); got != "SAVE20" {
		t.Errorf("expected SAVE20, got %q", got)
	}
}
