package order

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// PackageSnapshot is the denormalized copy of the purchased package taken at
// fulfillment time. Later catalog edits never change what a customer bought.
type PackageSnapshot struct {
	Name         string
	Price        float64
	DeliveryDays int
}

// Order is the aggregate root created once by the fulfillment coordinator and
// thereafter mutated only by the assignment/status tracker and the background
// expiration process.
//
// Invariants:
//   - exactly one Order exists per payment intent id (enforced together with
//     a storage unique constraint);
//   - the delivery schedule is strictly ascending with StartDate == first and
//     EndDate == last; at creation it has exactly DeliveryDays entries. An
//     admin correction of DeliveryDays may later leave the stored schedule
//     shorter or longer, so the count binds creation only;
//   - a driver reference is present exactly when the delivery lifecycle says
//     one should be.
type Order struct {
	id          kernel.UUID
	orderNumber string

	customerID kernel.UUID
	packageID  kernel.UUID
	pkg        PackageSnapshot

	schedule  []kernel.Day
	startDate kernel.Day
	endDate   kernel.Day

	status         Status
	deliveryStatus DeliveryStatus

	driver           DriverRef
	deliverySequence *int
	proofOfDelivery  *string

	address DeliveryAddress
	payment PaymentDetails

	isConstructed bool
}

// NewOrderNumber generates a human-readable unique order number,
// e.g. "ORD-20260823-493027". Uniqueness is ultimately enforced by the store.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%06d", now.UTC().Format("20060102"), rand.IntN(1_000_000)) //nolint:gosec // not a secret
}

// NewOrder creates a fulfilled order in its initial state: Active,
// PendingAssignment, no driver. The schedule must already be complete; the
// coordinator never persists a partial one.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	customerID kernel.UUID,
	packageID kernel.UUID,
	pkg PackageSnapshot,
	schedule []kernel.Day,
	address DeliveryAddress,
	payment PaymentDetails,
) (*Order, error) {
	o := &Order{
		status:         StatusActive,
		deliveryStatus: PendingAssignment,
		driver:         NoDriver(),
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setCustomerID(customerID),
		o.setPackageID(packageID),
		o.setPackageSnapshot(pkg),
		o.setSchedule(schedule, pkg.DeliveryDays),
		o.setPayment(payment),
	); err != nil {
		return nil, err
	}

	o.address = address
	return o, nil
}

// RestoreOrder reconstructs an order from persistence with its full state.
// The stored schedule is validated for ordering only, not against the
// snapshot's delivery count: after SetDeliveryDays the two may legally
// disagree, and a stored order must always load back.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	customerID kernel.UUID,
	packageID kernel.UUID,
	pkg PackageSnapshot,
	schedule []kernel.Day,
	address DeliveryAddress,
	payment PaymentDetails,
	status Status,
	deliveryStatus DeliveryStatus,
	driver DriverRef,
	deliverySequence *int,
	proofOfDelivery *string,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setCustomerID(customerID),
		o.setPackageID(packageID),
		o.setPackageSnapshot(pkg),
		o.restoreSchedule(schedule),
		o.setPayment(payment),
		status.Validate(),
		deliveryStatus.Validate(),
	); err != nil {
		return nil, err
	}

	o.address = address
	o.status = status
	o.deliveryStatus = deliveryStatus
	o.driver = driver
	o.deliverySequence = deliverySequence
	o.proofOfDelivery = proofOfDelivery
	return o, nil
}

// Validate ensures the Order instance came from a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// OrderNumber returns the human-readable order number.
func (o *Order) OrderNumber() string { return o.orderNumber }

// CustomerID returns the purchasing customer reference.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// PackageID returns the purchased package reference.
func (o *Order) PackageID() kernel.UUID { return o.packageID }

// Package returns the package snapshot taken at purchase time.
func (o *Order) Package() PackageSnapshot { return o.pkg }

// Schedule returns the ordered delivery dates. Callers must not mutate it.
func (o *Order) Schedule() []kernel.Day { return o.schedule }

// StartDate returns the first delivery date.
func (o *Order) StartDate() kernel.Day { return o.startDate }

// EndDate returns the last delivery date.
func (o *Order) EndDate() kernel.Day { return o.endDate }

// Status returns the commercial status.
func (o *Order) Status() Status { return o.status }

// DeliveryStatus returns the fulfillment lifecycle state.
func (o *Order) DeliveryStatus() DeliveryStatus { return o.deliveryStatus }

// Driver returns the current driver assignment.
func (o *Order) Driver() DriverRef { return o.driver }

// DeliverySequence returns the externally assigned route sequence, if any.
func (o *Order) DeliverySequence() *int { return o.deliverySequence }

// ProofOfDeliveryURL returns the uploaded proof location, if any.
func (o *Order) ProofOfDeliveryURL() *string { return o.proofOfDelivery }

// Address returns the delivery address snapshot.
func (o *Order) Address() DeliveryAddress { return o.address }

// Payment returns the payment record that created this order.
func (o *Order) Payment() PaymentDetails { return o.payment }

// AssignDriver attaches a driver and advances the delivery lifecycle to
// Assigned. Legal from PendingAssignment and, as reassignment, from Assigned.
func (o *Order) AssignDriver(driverID kernel.UUID) error {
	ref, err := DriverByID(driverID)
	if err != nil {
		return err
	}

	next, err := o.deliveryStatus.Assign()
	if err != nil {
		return err
	}

	o.deliveryStatus = next
	o.driver = ref
	return nil
}

// MarkOutForDelivery advances Assigned -> OutForDelivery.
func (o *Order) MarkOutForDelivery() error {
	next, err := o.deliveryStatus.Dispatch()
	if err != nil {
		return err
	}
	o.deliveryStatus = next
	return nil
}

// MarkDelivered advances OutForDelivery -> Delivered, recording the proof URL
// when one is supplied.
func (o *Order) MarkDelivered(proofURL string) error {
	next, err := o.deliveryStatus.Deliver()
	if err != nil {
		return err
	}
	o.deliveryStatus = next
	if proofURL != "" {
		o.proofOfDelivery = &proofURL
	}
	return nil
}

// MarkDeliveryFailed advances OutForDelivery -> Failed.
func (o *Order) MarkDeliveryFailed() error {
	next, err := o.deliveryStatus.Fail()
	if err != nil {
		return err
	}
	o.deliveryStatus = next
	return nil
}

// Cancel cancels both the commercial status and, when still running, the
// delivery lifecycle.
func (o *Order) Cancel() error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}
	o.status = next

	if !o.deliveryStatus.IsTerminal() {
		o.deliveryStatus = DeliveryCancelled
	}
	return nil
}

// Expire flips an Active order to Expired. Only the status is touched; this
// is the single mutation the background expiration process performs.
func (o *Order) Expire() error {
	next, err := o.status.Expire()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// Admin override setters. Each applies the new value only when it actually
// differs and reports whether a change occurred, so the update handler can
// skip no-op writes. OverrideDeliveryStatus additionally reports transitions
// the state machine would not allow, which callers log as flagged.

// OverrideStatus force-sets the commercial status.
func (o *Order) OverrideStatus(s Status) (changed bool, err error) {
	if err = s.Validate(); err != nil {
		return false, err
	}
	if o.status == s {
		return false, nil
	}
	o.status = s
	return true, nil
}

// OverrideDeliveryStatus force-sets the delivery status. flagged is true when
// the transition skips states the machine would normally require.
func (o *Order) OverrideDeliveryStatus(s DeliveryStatus) (changed bool, flagged bool, err error) {
	if err = s.Validate(); err != nil {
		return false, false, err
	}
	if o.deliveryStatus == s {
		return false, false, nil
	}
	flagged = !o.deliveryStatus.CanTransitionTo(s)
	o.deliveryStatus = s
	return true, flagged, nil
}

// SetDriver force-sets the driver reference (including unassignment).
func (o *Order) SetDriver(ref DriverRef) (changed bool) {
	if o.driver.IsEqual(ref) {
		return false
	}
	o.driver = ref
	return true
}

// SetDeliverySequence sets or clears the route sequence number.
func (o *Order) SetDeliverySequence(seq *int) (changed bool) {
	if intPtrEqual(o.deliverySequence, seq) {
		return false
	}
	o.deliverySequence = seq
	return true
}

// SetProofOfDeliveryURL sets or clears the proof-of-delivery location.
func (o *Order) SetProofOfDeliveryURL(url *string) (changed bool) {
	if strPtrEqual(o.proofOfDelivery, url) {
		return false
	}
	o.proofOfDelivery = url
	return true
}

// SetAddress replaces the delivery address snapshot.
func (o *Order) SetAddress(addr DeliveryAddress) (changed bool) {
	if o.address.IsEqual(addr) {
		return false
	}
	o.address = addr
	return true
}

// SetStartDate force-sets the schedule's advertised start date.
func (o *Order) SetStartDate(d kernel.Day) (changed bool, err error) {
	if err = d.Validate(); err != nil {
		return false, err
	}
	if o.startDate.IsEqual(d) {
		return false, nil
	}
	o.startDate = d
	return true, nil
}

// SetEndDate force-sets the schedule's advertised end date.
func (o *Order) SetEndDate(d kernel.Day) (changed bool, err error) {
	if err = d.Validate(); err != nil {
		return false, err
	}
	if o.endDate.IsEqual(d) {
		return false, nil
	}
	o.endDate = d
	return true, nil
}

// SetPackageName corrects the snapshot name.
func (o *Order) SetPackageName(name string) (changed bool, err error) {
	if name == "" {
		return false, errs.NewValueIsRequiredError("packageName")
	}
	if o.pkg.Name == name {
		return false, nil
	}
	o.pkg.Name = name
	return true, nil
}

// SetPackagePrice corrects the snapshot price.
func (o *Order) SetPackagePrice(price float64) (changed bool, err error) {
	if price <= 0 {
		return false, errs.NewValueIsInvalidError("packagePrice")
	}
	if o.pkg.Price == price {
		return false, nil
	}
	o.pkg.Price = price
	return true, nil
}

// SetDeliveryDays corrects the snapshot delivery count. The stored schedule
// is left as-is; rebuilding it is an explicit separate operation.
func (o *Order) SetDeliveryDays(days int) (changed bool, err error) {
	if days <= 0 {
		return false, errs.NewValueIsInvalidError("deliveryDays")
	}
	if o.pkg.DeliveryDays == days {
		return false, nil
	}
	o.pkg.DeliveryDays = days
	return true, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(n string) error {
	if n == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = n
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setPackageID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("packageId", err)
	}
	o.packageID = id
	return nil
}

func (o *Order) setPackageSnapshot(pkg PackageSnapshot) error {
	if pkg.Name == "" {
		return errs.NewValueIsRequiredError("packageName")
	}
	if pkg.Price <= 0 {
		return errs.NewValueIsInvalidError("packagePrice")
	}
	if pkg.DeliveryDays <= 0 {
		return errs.NewValueIsInvalidError("deliveryDays")
	}
	o.pkg = pkg
	return nil
}

// setSchedule enforces the creation invariant: exactly deliveryDays entries,
// strictly ascending, start and end derived from the edges.
func (o *Order) setSchedule(schedule []kernel.Day, deliveryDays int) error {
	if len(schedule) != 0 && len(schedule) != deliveryDays {
		return errs.NewValueIsInvalidErrorWithCause("deliverySchedule",
			fmt.Errorf("schedule has %d dates, package requires %d", len(schedule), deliveryDays))
	}
	return o.restoreSchedule(schedule)
}

// restoreSchedule validates ordering only; the entry count is a creation
// invariant, not a reload one.
func (o *Order) restoreSchedule(schedule []kernel.Day) error {
	if len(schedule) == 0 {
		return errs.NewValueIsRequiredError("deliverySchedule")
	}

	for i, day := range schedule {
		if err := day.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("deliverySchedule", err)
		}
		if i > 0 && !schedule[i-1].Before(day) {
			return errs.NewValueIsInvalidErrorWithCause("deliverySchedule",
				fmt.Errorf("dates must be strictly ascending, %s is not after %s", day, schedule[i-1]))
		}
	}

	o.schedule = schedule
	o.startDate = schedule[0]
	o.endDate = schedule[len(schedule)-1]
	return nil
}

func (o *Order) setPayment(p PaymentDetails) error {
	if p.PaymentIntentID == "" {
		return errs.NewValueIsRequiredError("paymentIntentId")
	}
	o.payment = p
	return nil
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
