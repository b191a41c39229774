package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrFulfillPaymentCommandIsNotConstructed = errors.New(
	"FulfillPaymentCommand must be created via NewFulfillPaymentCommand constructor",
)

// FulfillPaymentCommand carries a verified payment-confirmed event. Signature
// verification happened upstream; by the time this command exists the money
// has moved and an order must come into existence exactly once.
type FulfillPaymentCommand struct { //nolint:recvcheck //using for validation
	customerID        kernel.UUID
	packageID         kernel.UUID
	paymentIntentID   string
	gatewayCustomerID string
	amountPaid        int64
	currency          string
	paymentDate       time.Time
	card              *order.CardMetadata

	guard guard.ConstructorGuard
}

// NewFulfillPaymentCommand validates the event fields. Card metadata is
// optional; everything else is required.
func NewFulfillPaymentCommand(
	customerID kernel.UUID,
	packageID kernel.UUID,
	paymentIntentID string,
	gatewayCustomerID string,
	amountPaid int64,
	currency string,
	paymentDate time.Time,
	card *order.CardMetadata,
) (FulfillPaymentCommand, error) {
	cmd := FulfillPaymentCommand{
		paymentDate: paymentDate,
		card:        card,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setPackageID(packageID),
		cmd.setPaymentIntentID(paymentIntentID),
		cmd.setGatewayCustomerID(gatewayCustomerID),
		cmd.setAmountPaid(amountPaid),
		cmd.setCurrency(currency),
	); err != nil {
		return FulfillPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FulfillPaymentCommand) Validate() error {
	return c.guard.Validate(ErrFulfillPaymentCommandIsNotConstructed)
}

// CustomerID returns the purchasing customer identifier.
func (c FulfillPaymentCommand) CustomerID() kernel.UUID { return c.customerID }

// PackageID returns the purchased package identifier.
func (c FulfillPaymentCommand) PackageID() kernel.UUID { return c.packageID }

// PaymentIntentID returns the gateway payment intent, the idempotency key.
func (c FulfillPaymentCommand) PaymentIntentID() string { return c.paymentIntentID }

// GatewayCustomerID returns the customer's id at the payment gateway.
func (c FulfillPaymentCommand) GatewayCustomerID() string { return c.gatewayCustomerID }

// AmountPaid returns the charged amount in minor currency units.
func (c FulfillPaymentCommand) AmountPaid() int64 { return c.amountPaid }

// Currency returns the payment currency code.
func (c FulfillPaymentCommand) Currency() string { return c.currency }

// PaymentDate returns when the gateway confirmed the payment.
func (c FulfillPaymentCommand) PaymentDate() time.Time { return c.paymentDate }

// Card returns the optional card metadata forwarded by the gateway.
func (c FulfillPaymentCommand) Card() *order.CardMetadata { return c.card }

func (c *FulfillPaymentCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	c.customerID = id
	return nil
}

func (c *FulfillPaymentCommand) setPackageID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("packageId", err)
	}
	c.packageID = id
	return nil
}

func (c *FulfillPaymentCommand) setPaymentIntentID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("paymentIntentId")
	}
	c.paymentIntentID = id
	return nil
}

func (c *FulfillPaymentCommand) setGatewayCustomerID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("gatewayCustomerId")
	}
	c.gatewayCustomerID = id
	return nil
}

func (c *FulfillPaymentCommand) setAmountPaid(amount int64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidError("amountPaid")
	}
	c.amountPaid = amount
	return nil
}

func (c *FulfillPaymentCommand) setCurrency(currency string) error {
	if currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	c.currency = currency
	return nil
}
