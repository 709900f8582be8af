package response

import (
	"time"

	"leisure-booking-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderSlotResponse struct {
	SlotID       uuid.UUID  `json:"slotId"`
	ResourceID   uuid.UUID  `json:"resourceId"`
	ResourceName string     `json:"resourceName"`
	Date         string     `json:"date"`
	Start        string     `json:"start"`
	End          string     `json:"end"`
	PeopleCount  int        `json:"peopleCount"`
	AmountCents  int64      `json:"amountCents"`
	Status       string     `json:"status"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
}

type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	Number        string              `json:"number"`
	Email         string              `json:"email"`
	FirstName     string              `json:"firstName"`
	LastName      string              `json:"lastName"`
	Phone         *string             `json:"phone,omitempty"`
	PaymentMethod string              `json:"paymentMethod"`
	CouponCode    *string             `json:"couponCode,omitempty"`
	DiscountCents int64               `json:"discountCents"`
	TotalCents    int64               `json:"totalCents"`
	Status        string              `json:"status"`
	Slots         []OrderSlotResponse `json:"slots"`
	CreatedAt     time.Time           `json:"createdAt"`
}

func FromOrderView(v *queries.OrderView) *OrderResponse {
	slots := make([]OrderSlotResponse, len(v.Slots))
	for i, s := range v.Slots {
		slots[i] = OrderSlotResponse{
			SlotID:       s.SlotID,
			ResourceID:   s.ResourceID,
			ResourceName: s.ResourceName,
			Date:         s.Date,
			Start:        s.Start,
			End:          s.End,
			PeopleCount:  s.PeopleCount,
			AmountCents:  s.AmountCents,
			Status:       s.Status,
			ExpiresAt:    s.ExpiresAt,
		}
	}
	return &OrderResponse{
		ID:            v.ID,
		Number:        v.Number,
		Email:         v.Email,
		FirstName:     v.FirstName,
		LastName:      v.LastName,
		Phone:         v.Phone,
		PaymentMethod: v.PaymentMethod,
		CouponCode:    v.CouponCode,
		DiscountCents: v.DiscountCents,
		TotalCents:    v.TotalCents,
		Status:        v.Status,
		Slots:         slots,
		CreatedAt:     v.CreatedAt,
	}
}
