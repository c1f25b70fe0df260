package jobs

import (
	"log"
	"time"

	"github.com/solacecare/counseling_backend/database"
	"github.com/solacecare/counseling_backend/models"
)

// DeactivateExpiredCoupons soft-disables coupons whose activity window has
// ended. Historical sessions keep referencing the code; nothing is deleted.
func DeactivateExpiredCoupons() {
	log.Println("Running job: DeactivateExpiredCoupons...")

	res := database.DB.Model(&models.Coupon{}).
		Where("is_active = ? AND end_date IS NOT NULL AND end_date < ?", true, time.Now()).
		Update("is_active", false)

	if res.Error != nil {
		log.Printf("Error deactivating expired coupons: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("Deactivated %d expired coupon(s)", res.RowsAffected)
	}
}
