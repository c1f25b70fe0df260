package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/solacecare/counseling_backend/models"
	"github.com/solacecare/counseling_backend/notifications"
	"github.com/solacecare/counseling_backend/payments"
	"github.com/solacecare/counseling_backend/utils"
	"gorm.io/gorm"
)

var (
	ErrServiceNotFound   = errors.New("service not found")
	ErrSessionNotFound   = errors.New("session not found")
	ErrTherapistNotFound = errors.New("therapist not found")
	ErrForbidden         = errors.New("access denied")
	ErrInvalidSignature  = errors.New("invalid signature")
	ErrPaymentGateway    = errors.New("payment order could not be created")
	ErrSessionUnassigned = errors.New("session must be assigned before completion")
)

const orderCurrency = "INR"

// Actor is the authenticated caller as established by the auth middleware.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  string // user, therapist, admin
}

type CreateSessionInput struct {
	ServiceID           uuid.UUID
	Motivation          string
	StrugglingAreas     []string
	OtherArea           *string
	PreferredMentorType string
	PreferredLanguage   string
	CommunicationMode   string
	Date                time.Time
	Time                string
	CouponCode          *string
}

// OrderCreator creates an order with the payment gateway. Production code
// passes payments.CreateRazorpayOrder.
type OrderCreator func(amount float64, currency, receipt string) (*payments.RazorpayOrder, error)

// SignatureVerifier checks a payment callback signature. Production code
// passes payments.VerifyPaymentSignature.
type SignatureVerifier func(orderID, paymentID, signature string) bool

// CreateSession prices the booking, creates a gateway order when something is
// payable, and persists the session in pending state. The coupon usage
// increment runs in the same transaction as the insert, after it: both become
// durable together, so usage is never consumed for a session that was not
// created, and a session can never commit against an exhausted coupon.
func CreateSession(db *gorm.DB, input CreateSessionInput, actor Actor, createOrder OrderCreator) (*models.Session, error) {
	var service models.Service
	if err := db.First(&service, "id = ?", input.ServiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	quote, err := PriceSession(db, &service, input.CouponCode, time.Now())
	if err != nil {
		return nil, err
	}

	// The gateway order must exist before the session that references it.
	// A zero-amount checkout skips the gateway entirely.
	var orderID *string
	if quote.FinalAmount > 0 {
		order, err := createOrder(quote.FinalAmount, orderCurrency, utils.GenerateReceiptID())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPaymentGateway, err)
		}
		orderID = &order.ID
	}

	session := models.Session{
		UserID:              actor.ID,
		ServiceID:           service.ID,
		Motivation:          input.Motivation,
		StrugglingAreas:     input.StrugglingAreas,
		OtherArea:           input.OtherArea,
		PreferredMentorType: input.PreferredMentorType,
		PreferredLanguage:   input.PreferredLanguage,
		CommunicationMode:   input.CommunicationMode,
		Date:                input.Date,
		Time:                input.Time,
		Amount:              quote.FinalAmount,
		PaymentStatus:       "pending",
		OrderID:             orderID,
		CouponCode:          quote.CouponCode,
		Status:              "pending",
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&session).Error; err != nil {
			return err
		}
		if quote.CouponCode != nil {
			if err := CommitCouponUsage(tx, *quote.CouponCode); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// ConfirmPayment transitions the session matching the gateway order to paid.
// The signature check is the sole authorization for this transition, and the
// guarded update keeps it idempotent under duplicate callback delivery.
func ConfirmPayment(db *gorm.DB, orderID, paymentID, signature string, verify SignatureVerifier) (*models.Session, error) {
	if !verify(orderID, paymentID, signature) {
		return nil, ErrInvalidSignature
	}

	res := db.Model(&models.Session{}).
		Where("order_id = ? AND payment_status <> ?", orderID, "paid").
		Updates(map[string]interface{}{
			"payment_status": "paid",
			"payment_id":     paymentID,
		})
	if res.Error != nil {
		return nil, res.Error
	}

	var session models.Session
	if err := db.Preload("User").Preload("Service").First(&session, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if res.RowsAffected > 0 {
		go notifications.SendEmail(
			session.User.FirstName,
			session.User.Email,
			"Your Session is Confirmed!",
			fmt.Sprintf("<h1>Payment Received</h1><p>Your payment for %s was successful. A therapist will be assigned to you shortly.</p>", session.Service.Name),
		)
	}

	return &session, nil
}

// AssignTherapist sets the therapist on a session and moves it to assigned.
// Admin-only; the route middleware enforces the role.
func AssignTherapist(db *gorm.DB, sessionID, therapistID uuid.UUID) (*models.Session, error) {
	var therapist models.User
	if err := db.First(&therapist, "id = ? AND role = ?", therapistID, "therapist").Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTherapistNotFound
		}
		return nil, err
	}

	var session models.Session
	if err := db.First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	session.TherapistID = &therapist.ID
	session.Status = "assigned"
	if err := db.Save(&session).Error; err != nil {
		return nil, err
	}

	go notifications.SendEmail(
		therapist.FirstName,
		therapist.Email,
		"You Have a New Session!",
		"<h1>New Assignment</h1><p>A counseling session has been assigned to you. Please check your dashboard for details.</p>",
	)

	return &session, nil
}

// UpdateSessionStatus applies a status transition. Therapists may only touch
// sessions assigned to them; completing an unassigned session is refused for
// everyone, since an unassigned session cannot have been delivered.
func UpdateSessionStatus(db *gorm.DB, sessionID uuid.UUID, newStatus string, actor Actor) (*models.Session, error) {
	if actor.Role != "therapist" && actor.Role != "admin" {
		return nil, ErrForbidden
	}

	var session models.Session
	if err := db.First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if actor.Role == "therapist" {
		if session.TherapistID == nil || *session.TherapistID != actor.ID {
			return nil, ErrForbidden
		}
	}

	if newStatus == "completed" && session.TherapistID == nil {
		return nil, ErrSessionUnassigned
	}

	session.Status = newStatus
	if err := db.Save(&session).Error; err != nil {
		return nil, err
	}

	return &session, nil
}

// ListSessions applies the role-based visibility filter: admins see all,
// therapists their assignments, users their own bookings.
func ListSessions(db *gorm.DB, actor Actor) ([]models.Session, error) {
	query := db.Preload("User").Preload("Therapist").Preload("Service").Order("created_at desc")

	switch actor.Role {
	case "admin":
	case "therapist":
		query = query.Where("therapist_id = ?", actor.ID)
	default:
		query = query.Where("user_id = ?", actor.ID)
	}

	var sessions []models.Session
	if err := query.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetSession returns a single session, visible only to its owner, its
// assigned therapist, or an admin.
func GetSession(db *gorm.DB, sessionID uuid.UUID, actor Actor) (*models.Session, error) {
	var session models.Session
	if err := db.Preload("User").Preload("Therapist").Preload("Service").First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	switch actor.Role {
	case "admin":
	case "therapist":
		if session.TherapistID == nil || *session.TherapistID != actor.ID {
			return nil, ErrForbidden
		}
	default:
		if session.UserID != actor.ID {
			return nil, ErrForbidden
		}
	}

	return &session, nil
}
