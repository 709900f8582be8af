package response

import (
	"time"

	"leisure-booking-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type ReservedSlotResponse struct {
	SlotID       uuid.UUID `json:"slotId"`
	ResourceID   uuid.UUID `json:"resourceId"`
	ResourceName string    `json:"resourceName"`
	Date         string    `json:"date"`
	Start        string    `json:"start"`
	End          string    `json:"end"`
	AmountCents  int64     `json:"amountCents"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type HoldResponse struct {
	OrderID       uuid.UUID              `json:"orderId"`
	OrderNumber   string                 `json:"orderNumber"`
	SubtotalCents int64                  `json:"subtotalCents"`
	DiscountCents int64                  `json:"discountCents"`
	TotalCents    int64                  `json:"totalCents"`
	Slots         []ReservedSlotResponse `json:"slots"`
}

func FromHoldResult(r *commands.CreateHoldResult) *HoldResponse {
	slots := make([]ReservedSlotResponse, len(r.Slots))
	for i, s := range r.Slots {
		slots[i] = ReservedSlotResponse{
			SlotID:       s.SlotID,
			ResourceID:   s.ResourceID,
			ResourceName: s.ResourceName,
			Date:         s.Date,
			Start:        s.Start,
			End:          s.End,
			AmountCents:  s.AmountCents,
			ExpiresAt:    s.ExpiresAt,
		}
	}
	return &HoldResponse{
		OrderID:       r.OrderID,
		OrderNumber:   r.OrderNumber,
		SubtotalCents: r.SubtotalCents,
		DiscountCents: r.DiscountCents,
		TotalCents:    r.TotalCents,
		Slots:         slots,
	}
}

type CheckoutResponse struct {
	SessionID   string `json:"sessionId"`
	RedirectURL string `json:"redirectUrl"`
}

func FromCheckoutResult(r *commands.CheckoutResult) *CheckoutResponse {
	return &CheckoutResponse{
		SessionID:   r.SessionID,
		RedirectURL: r.RedirectURL,
	}
}
