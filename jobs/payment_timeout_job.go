package jobs

import (
	"log"
	"time"

	"github.com/solacecare/counseling_backend/database"
	"github.com/solacecare/counseling_backend/models"
)

const paymentTimeout = 24 * time.Hour

// FailStalePayments marks sessions that have been waiting on a gateway order
// for too long as failed. Zero-amount sessions have no order and are left
// alone.
func FailStalePayments() {
	log.Println("Running job: FailStalePayments...")

	cutoff := time.Now().Add(-paymentTimeout)

	res := database.DB.Model(&models.Session{}).
		Where("payment_status = ? AND order_id IS NOT NULL AND created_at < ?", "pending", cutoff).
		Update("payment_status", "failed")

	if res.Error != nil {
		log.Printf("Error failing stale payments: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("Marked %d stale payment(s) as failed", res.RowsAffected)
	}
}
