package order

import (
	"errors"
	"math"
	"time"

	"fulfillment/internal/pkg/errs"
)

// CardMetadata is optional card information forwarded by the payment gateway.
type CardMetadata struct {
	Type  string
	Brand string
	Last4 string
}

// PaymentDetails is the order's record of the confirmed payment that created
// it. PaymentIntentID doubles as the idempotency key: a unique constraint on
// it guarantees at most one order per payment.
type PaymentDetails struct {
	PaymentIntentID   string
	GatewayCustomerID string
	// AmountPaid is in minor currency units (cents).
	AmountPaid  int64
	Currency    string
	PaymentDate time.Time
	Card        *CardMetadata
}

// NewPaymentDetails validates the fields the coordinator must never persist
// without: the intent id, the gateway customer, a positive amount, and a
// currency code.
func NewPaymentDetails(
	paymentIntentID string,
	gatewayCustomerID string,
	amountPaid int64,
	currency string,
	paymentDate time.Time,
	card *CardMetadata,
) (PaymentDetails, error) {
	var err error
	if paymentIntentID == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("paymentIntentId"))
	}
	if gatewayCustomerID == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("gatewayCustomerId"))
	}
	if amountPaid <= 0 {
		err = errors.Join(err, errs.NewValueIsInvalidError("amountPaid"))
	}
	if currency == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("currency"))
	}
	if err != nil {
		return PaymentDetails{}, err
	}

	return PaymentDetails{
		PaymentIntentID:   paymentIntentID,
		GatewayCustomerID: gatewayCustomerID,
		AmountPaid:        amountPaid,
		Currency:          currency,
		PaymentDate:       paymentDate,
		Card:              card,
	}, nil
}

// PriceMinorUnits converts a package price to the minor-unit amount the
// gateway is expected to have charged. Rounding guards against float drift
// in stored prices (24.99 * 100 == 2498.9999...).
func PriceMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}
