package handlers

import (
	"errors"
	"time"

	"github.com/solacecare/counseling_backend/database"
	"github.com/solacecare/counseling_backend/models"
	"github.com/solacecare/counseling_backend/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateCouponRequest struct {
	Code              string     `json:"code" validate:"required,min=3,max=50"`
	DiscountType      string     `json:"discount_type" validate:"required,oneof=percentage amount"`
	DiscountValue     float64    `json:"discount_value" validate:"required,gte=0"`
	MaxDiscountAmount *float64   `json:"max_discount_amount,omitempty" validate:"omitempty,gte=0"`
	MinOrderAmount    *float64   `json:"min_order_amount,omitempty" validate:"omitempty,gte=0"`
	UsageLimit        *int       `json:"usage_limit,omitempty" validate:"omitempty,gte=0"`
	StartDate         *time.Time `json:"start_date,omitempty"`
	EndDate           *time.Time `json:"end_date,omitempty"`
	IsActive          *bool      `json:"is_active,omitempty"`
}

func CreateCoupon(c *fiber.Ctx) error {
	var req CreateCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.DiscountType == "percentage" && req.DiscountValue > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Percentage discount cannot exceed 100"})
	}

	coupon := models.Coupon{
		Code:              services.NormalizeCouponCode(req.Code),
		DiscountType:      req.DiscountType,
		DiscountValue:     req.DiscountValue,
		MaxDiscountAmount: req.MaxDiscountAmount,
		MinOrderAmount:    req.MinOrderAmount,
		UsageLimit:        req.UsageLimit,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		IsActive:          true,
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	if err := database.DB.Create(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Coupon code already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create coupon"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Coupon created",
		"coupon":  coupon,
	})
}

func GetAllCoupons(c *fiber.Ctx) error {
	var coupons []models.Coupon
	if err := database.DB.Order("created_at desc").Find(&coupons).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch coupons"})
	}
	return c.JSON(coupons)
}

func GetCouponByID(c *fiber.Ctx) error {
	couponID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid coupon ID format"})
	}

	var coupon models.Coupon
	if err := database.DB.First(&coupon, "id = ?", couponID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Coupon not found"})
	}
	return c.JSON(coupon)
}

type UpdateCouponRequest struct {
	Code              *string    `json:"code,omitempty" validate:"omitempty,min=3,max=50"`
	DiscountType      *string    `json:"discount_type,omitempty" validate:"omitempty,oneof=percentage amount"`
	DiscountValue     *float64   `json:"discount_value,omitempty" validate:"omitempty,gte=0"`
	MaxDiscountAmount *float64   `json:"max_discount_amount,omitempty" validate:"omitempty,gte=0"`
	MinOrderAmount    *float64   `json:"min_order_amount,omitempty" validate:"omitempty,gte=0"`
	UsageLimit        *int       `json:"usage_limit,omitempty" validate:"omitempty,gte=0"`
	StartDate         *time.Time `json:"start_date,omitempty"`
	EndDate           *time.Time `json:"end_date,omitempty"`
	IsActive          *bool      `json:"is_active,omitempty"`
}

// UpdateCoupon edits coupon attributes. The usage counter is deliberately not
// reachable here, it only moves through the checkout commit.
func UpdateCoupon(c *fiber.Ctx) error {
	couponID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid coupon ID format"})
	}

	var req UpdateCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var coupon models.Coupon
	if err := database.DB.First(&coupon, "id = ?", couponID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Coupon not found"})
	}

	if req.Code != nil {
		coupon.Code = services.NormalizeCouponCode(*req.Code)
	}
	if req.DiscountType != nil {
		coupon.DiscountType = *req.DiscountType
	}
	if req.DiscountValue != nil {
		coupon.DiscountValue = *req.DiscountValue
	}
	if req.MaxDiscountAmount != nil {
		coupon.MaxDiscountAmount = req.MaxDiscountAmount
	}
	if req.MinOrderAmount != nil {
		coupon.MinOrderAmount = req.MinOrderAmount
	}
	if req.UsageLimit != nil {
		coupon.UsageLimit = req.UsageLimit
	}
	if req.StartDate != nil {
		coupon.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		coupon.EndDate = req.EndDate
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}
	if coupon.DiscountType == "percentage" && coupon.DiscountValue > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Percentage discount cannot exceed 100"})
	}

	if err := database.DB.Save(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Coupon code already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update coupon"})
	}

	return c.JSON(fiber.Map{
		"message": "Coupon updated",
		"coupon":  coupon,
	})
}

func DeleteCoupon(c *fiber.Ctx) error {
	couponID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid coupon ID format"})
	}

	res := database.DB.Delete(&models.Coupon{}, "id = ?", couponID)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete coupon"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Coupon not found"})
	}

	return c.JSON(fiber.Map{"message": "Coupon deleted"})
}

type ValidateCouponRequest struct {
	Code        string  `json:"code" validate:"required"`
	OrderAmount float64 `json:"order_amount" validate:"gte=0"`
	UserID      *string `json:"user_id,omitempty"`
}

// ValidateCoupon previews the discount for an order amount. It never commits
// usage; that only happens when a session checkout actually applies the code.
func ValidateCoupon(c *fiber.Ctx) error {
	var req ValidateCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	coupon, discount, err := services.EvaluateCoupon(database.DB, req.Code, req.OrderAmount, time.Now())
	if err != nil {
		return sessionError(c, err)
	}

	return c.JSON(fiber.Map{
		"valid":           true,
		"code":            coupon.Code,
		"discount_amount": discount,
		"final_amount":    req.OrderAmount - discount,
	})
}
