package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/solacecare/counseling_backend/database"
	"github.com/solacecare/counseling_backend/models"
	"github.com/solacecare/counseling_backend/payments"
	"github.com/solacecare/counseling_backend/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func currentActor(c *fiber.Ctx) services.Actor {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)

	id, _ := uuid.Parse(claims["user_id"].(string))
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return services.Actor{ID: id, Email: email, Role: role}
}

// sessionError translates session/coupon service failures into HTTP outcomes.
// Unclassified errors are logged in full and surfaced generically.
func sessionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrServiceNotFound),
		errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, services.ErrTherapistNotFound),
		errors.Is(err, services.ErrCouponNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrCouponNotStarted),
		errors.Is(err, services.ErrCouponExpired),
		errors.Is(err, services.ErrCouponLimitReached),
		errors.Is(err, services.ErrCouponBelowMinimum),
		errors.Is(err, services.ErrInvalidSignature),
		errors.Is(err, services.ErrSessionUnassigned):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrPaymentGateway):
		log.Printf("🔥 Payment gateway failure: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Payment could not be initiated, please try again."})
	default:
		log.Printf("🔥 Unexpected session error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}

type CreateSessionRequest struct {
	ServiceID           string   `json:"service_id" validate:"required,uuid"`
	Motivation          string   `json:"motivation" validate:"required"`
	StrugglingAreas     []string `json:"struggling_areas" validate:"required,min=1"`
	OtherArea           *string  `json:"other_area,omitempty"`
	PreferredMentorType string   `json:"preferred_mentor_type" validate:"required,oneof=male female no-preference"`
	PreferredLanguage   string   `json:"preferred_language" validate:"required"`
	CommunicationMode   string   `json:"communication_mode" validate:"required,oneof=video-meeting phone-call"`
	Date                string   `json:"date" validate:"required,datetime=2006-01-02"`
	Time                string   `json:"time" validate:"required"`
	CouponCode          *string  `json:"coupon_code,omitempty"`
}

func CreateSession(c *fiber.Ctx) error {
	actor := currentActor(c)

	var req CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	serviceID, _ := uuid.Parse(req.ServiceID)
	date, _ := time.Parse("2006-01-02", req.Date)

	session, err := services.CreateSession(database.DB, services.CreateSessionInput{
		ServiceID:           serviceID,
		Motivation:          req.Motivation,
		StrugglingAreas:     req.StrugglingAreas,
		OtherArea:           req.OtherArea,
		PreferredMentorType: req.PreferredMentorType,
		PreferredLanguage:   req.PreferredLanguage,
		CommunicationMode:   req.CommunicationMode,
		Date:                date,
		Time:                req.Time,
		CouponCode:          req.CouponCode,
	}, actor, payments.CreateRazorpayOrder)
	if err != nil {
		return sessionError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Session created successfully",
		"session":  session,
		"order_id": session.OrderID,
		"amount":   session.Amount,
	})
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

func VerifyPayment(c *fiber.Ctx) error {
	var req VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	session, err := services.ConfirmPayment(
		database.DB,
		req.RazorpayOrderID,
		req.RazorpayPaymentID,
		req.RazorpaySignature,
		payments.VerifyPaymentSignature,
	)
	if err != nil {
		return sessionError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Payment validated successfully",
		"session": session,
	})
}

type AssignTherapistRequest struct {
	SessionID   string `json:"session_id" validate:"required,uuid"`
	TherapistID string `json:"therapist_id" validate:"required,uuid"`
}

func AssignTherapist(c *fiber.Ctx) error {
	var req AssignTherapistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sessionID, _ := uuid.Parse(req.SessionID)
	therapistID, _ := uuid.Parse(req.TherapistID)

	session, err := services.AssignTherapist(database.DB, sessionID, therapistID)
	if err != nil {
		return sessionError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Therapist assigned successfully",
		"session": session,
	})
}

type UpdateStatusRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
	Status    string `json:"status" validate:"required,oneof=pending assigned completed"`
}

func UpdateSessionStatus(c *fiber.Ctx) error {
	actor := currentActor(c)

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sessionID, _ := uuid.Parse(req.SessionID)

	session, err := services.UpdateSessionStatus(database.DB, sessionID, req.Status, actor)
	if err != nil {
		return sessionError(c, err)
	}

	return c.JSON(session)
}

func GetSessions(c *fiber.Ctx) error {
	sessions, err := services.ListSessions(database.DB, currentActor(c))
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(sessions)
}

func GetSessionByID(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID format"})
	}

	session, err := services.GetSession(database.DB, sessionID, currentActor(c))
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(session)
}

type UpdateSessionRequest struct {
	Motivation          *string  `json:"motivation,omitempty"`
	StrugglingAreas     []string `json:"struggling_areas,omitempty"`
	OtherArea           *string  `json:"other_area,omitempty"`
	PreferredMentorType *string  `json:"preferred_mentor_type,omitempty" validate:"omitempty,oneof=male female no-preference"`
	PreferredLanguage   *string  `json:"preferred_language,omitempty"`
	CommunicationMode   *string  `json:"communication_mode,omitempty" validate:"omitempty,oneof=video-meeting phone-call"`
	Date                *string  `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Time                *string  `json:"time,omitempty"`
}

// UpdateSession lets the booking owner change session details. Payment and
// lifecycle fields are never client-writable through this path.
func UpdateSession(c *fiber.Ctx) error {
	actor := currentActor(c)

	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID format"})
	}

	var req UpdateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	session, err := services.GetSession(database.DB, sessionID, actor)
	if err != nil {
		return sessionError(c, err)
	}
	if actor.Role != "admin" && session.UserID != actor.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your session"})
	}

	if req.Motivation != nil {
		session.Motivation = *req.Motivation
	}
	if req.StrugglingAreas != nil {
		session.StrugglingAreas = req.StrugglingAreas
	}
	if req.OtherArea != nil {
		session.OtherArea = req.OtherArea
	}
	if req.PreferredMentorType != nil {
		session.PreferredMentorType = *req.PreferredMentorType
	}
	if req.PreferredLanguage != nil {
		session.PreferredLanguage = *req.PreferredLanguage
	}
	if req.CommunicationMode != nil {
		session.CommunicationMode = *req.CommunicationMode
	}
	if req.Date != nil {
		date, _ := time.Parse("2006-01-02", *req.Date)
		session.Date = date
	}
	if req.Time != nil {
		session.Time = *req.Time
	}

	if err := database.DB.Save(session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update session"})
	}

	return c.JSON(fiber.Map{
		"message": "Session updated successfully",
		"session": session,
	})
}

func DeleteSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID format"})
	}

	res := database.DB.Delete(&models.Session{}, "id = ?", sessionID)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete session"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}

	return c.JSON(fiber.Map{"message": "Session deleted successfully"})
}
