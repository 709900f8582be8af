package order

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidEmail         = errors.New("invalid customer email")
	ErrMissingName          = errors.New("customer name is required")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrNoItems              = errors.New("order must own at least one slot")
	ErrNegativeTotal        = errors.New("order total cannot be negative")
)

type Customer struct {
	Email     string
	FirstName string
	LastName  string
	Phone     *string
}

func NewCustomer(email, firstName, lastName string, phone *string) (Customer, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return Customer{}, ErrInvalidEmail
	}
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return Customer{}, ErrMissingName
	}
	return Customer{Email: email, FirstName: firstName, LastName: lastName, Phone: phone}, nil
}

// Order aggregates the slots reserved by one hold request together with the
// coupon discount that was computed at hold time. The discount is persisted
// here and never recomputed, so later coupon edits cannot alter the order.
type Order struct {
	id            uuid.UUID
	number        string
	customer      Customer
	paymentMethod PaymentMethod
	couponCode    *string
	discountCents int64
	totalCents    int64
	createdAt     time.Time
	updatedAt     time.Time
}

func NewOrder(
	customer Customer,
	paymentMethod PaymentMethod,
	couponCode *string,
	subtotalCents, discountCents int64,
	now time.Time,
) (*Order, error) {
	if !paymentMethod.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}
	total := subtotalCents - discountCents
	if total < 0 {
		return nil, ErrNegativeTotal
	}
	return &Order{
		id:            uuid.New(),
		number:        NewNumber(now),
		customer:      customer,
		paymentMethod: paymentMethod,
		couponCode:    couponCode,
		discountCents: discountCents,
		totalCents:    total,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructOrder(
	id uuid.UUID,
	number string,
	customer Customer,
	paymentMethod PaymentMethod,
	couponCode *string,
	discountCents, totalCents int64,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:            id,
		number:        number,
		customer:      customer,
		paymentMethod: paymentMethod,
		couponCode:    couponCode,
		discountCents: discountCents,
		totalCents:    totalCents,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (o *Order) ID() uuid.UUID                { return o.id }
func (o *Order) Number() string               { return o.number }
func (o *Order) Customer() Customer           { return o.customer }
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }
func (o *Order) CouponCode() *string          { return o.couponCode }
func (o *Order) DiscountCents() int64         { return o.discountCents }
func (o *Order) TotalCents() int64            { return o.totalCents }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) UpdatedAt() time.Time         { return o.updatedAt }
