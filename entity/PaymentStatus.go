package entity

// PaymentStatus tracks the payment sub-state of an order.
// pending → awaiting_payment (checkout session created) → paid | failed.
// A failed payment keeps the order in draft so checkout can be retried.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentAwaiting PaymentStatus = "awaiting_payment"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
)
