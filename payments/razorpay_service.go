package payments

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"time"

	config "github.com/solacecare/counseling_backend/configs"
)

const razorpayBaseURL = "https://api.razorpay.com/v1"

type RazorpayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // minor units (paise)
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// CreateRazorpayOrder registers a payment order with Razorpay. The amount is
// given in currency units and converted to the gateway's minor unit here.
func CreateRazorpayOrder(amount float64, currency, receipt string) (*RazorpayOrder, error) {
	keyID := config.Config("RAZORPAY_KEY_ID")
	keySecret := config.Config("RAZORPAY_KEY_SECRET")

	payload := createOrderRequest{
		Amount:   int64(math.Round(amount * 100)),
		Currency: currency,
		Receipt:  receipt,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order payload: %v", err)
	}

	req, err := http.NewRequest("POST", razorpayBaseURL+"/orders", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create order request: %v", err)
	}
	req.SetBasicAuth(keyID, keySecret)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach Razorpay: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		log.Printf("Razorpay API error: status %d, body: %s", resp.StatusCode, string(respBody))
		return nil, fmt.Errorf("razorpay returned non-200 status: %d", resp.StatusCode)
	}

	var order RazorpayOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %v", err)
	}

	return &order, nil
}

// VerifyPaymentSignature checks that a payment callback was signed by Razorpay
// with the shared key secret. This is the only authorization for marking a
// session paid.
func VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return verifySignature(config.Config("RAZORPAY_KEY_SECRET"), orderID, paymentID, signature)
}

func verifySignature(secret, orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	// hmac.Equal keeps the comparison constant time.
	return hmac.Equal([]byte(expected), []byte(signature))
}
