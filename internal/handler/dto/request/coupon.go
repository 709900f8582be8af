package request

import (
	"leisure-booking-api/internal/usecase/commands"
)

type ValidateCouponRequest struct {
	Code  string            `json:"code" binding:"required"`
	Email string            `json:"email" binding:"omitempty,email"`
	Items []HoldItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (r ValidateCouponRequest) ToParams() commands.ValidateCouponParams {
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
	return commands.ValidateCouponParams{
		Code:  r.Code,
		Email: r.Email,
		Items: items,
	}
}
