package models

import "time"

// PaymentRecord captures a verified certification fee payment. The
// reference comes from the payment gateway and is required before a
// payment-verification transition is accepted.
type PaymentRecord struct {
	ID            int64     `json:"id"`
	ApplicationID int64     `json:"application_id"`
	Phase         int       `json:"phase"`  // 1 = document review, 2 = field inspection
	Amount        int       `json:"amount"` // THB, whole units
	Reference     string    `json:"reference"`
	VerifiedAt    time.Time `json:"verified_at"`
}
