package request

import (
	"strings"

	"leisure-booking-api/internal/domain/order"
	"leisure-booking-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type HoldItemRequest struct {
	ResourceID  uuid.UUID `json:"resourceId" binding:"required"`
	Date        string    `json:"date" binding:"required"`
	Start       string    `json:"start" binding:"required"`
	DurationMin int       `json:"durationMin" binding:"required,min=1"`
	PeopleCount int       `json:"peopleCount" binding:"omitempty,min=1"`
}

type CustomerRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Phone     *string `json:"phone,omitempty"`
}

type CreateHoldRequest struct {
	Items         []HoldItemRequest `json:"items" binding:"required,min=1,dive"`
	Customer      CustomerRequest   `json:"customer" binding:"required"`
	CouponCode    *string           `json:"couponCode,omitempty"`
	PaymentMethod string            `json:"paymentMethod" binding:"required,oneof=ONLINE ON_SITE_CASH"`
}

// CheckoutRequest carries the order to open a payment session for.
type CheckoutRequest struct {
	OrderID uuid.UUID `json:"orderId" binding:"required"`
}

func (r CreateHoldRequest) GetCouponCode() *string {
	if r.CouponCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.CouponCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (r CreateHoldRequest) ToParams() commands.CreateHoldParams {
	items := make([]commands.HoldItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = commands.HoldItem{
			ResourceID:  item.ResourceID,
			Date:        item.Date,
			Start:       item.Start,
			DurationMin: item.DurationMin,
			PeopleCount: item.PeopleCount,
		}
	}
	return commands.CreateHoldParams{
		Items: items,
		Customer: commands.CustomerParams{
			Email:     r.Customer.Email,
			FirstName: r.Customer.FirstName,
			LastName:  r.Customer.LastName,
			Phone:     r.Customer.Phone,
		},
		CouponCode:    r.GetCouponCode(),
		PaymentMethod: order.PaymentMethod(r.PaymentMethod),
	}
}
