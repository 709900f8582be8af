package response

import (
	"time"

	"leisure-booking-api/internal/usecase/commands"
	"leisure-booking-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type CouponValidationResponse struct {
	Code          string `json:"code"`
	DiscountCents int64  `json:"discountCents"`
}

func FromCouponValidation(r *commands.ValidateCouponResult) *CouponValidationResponse {
	return &CouponValidationResponse{
		Code:          r.Code,
		DiscountCents: r.DiscountCents,
	}
}

type CouponResponse struct {
	ID            uuid.UUID  `json:"id"`
	Code          string     `json:"code"`
	Type          string     `json:"type"`
	Value         int64      `json:"value"`
	EligibleTypes []string   `json:"eligibleTypes"`
	ValidFrom     *time.Time `json:"validFrom,omitempty"`
	ValidTo       *time.Time `json:"validTo,omitempty"`
	MaxUses       *int32     `json:"maxUses,omitempty"`
	UsedCount     int32      `json:"usedCount"`
	MinSpendCents *int64     `json:"minSpendCents,omitempty"`
	ShowOnLanding bool       `json:"showOnLanding"`
}

func FromCouponSnapshot(s *shared.CouponSnapshot) *CouponResponse {
	eligible := make([]string, len(s.EligibleTypes))
	for i, t := range s.EligibleTypes {
		eligible[i] = t.String()
	}
	return &CouponResponse{
		ID:            s.ID,
		Code:          s.Code,
		Type:          s.Type.String(),
		Value:         s.Value,
		EligibleTypes: eligible,
		ValidFrom:     s.ValidFrom,
		ValidTo:       s.ValidTo,
		MaxUses:       s.MaxUses,
		UsedCount:     s.UsedCount,
		MinSpendCents: s.MinSpendCents,
		ShowOnLanding: s.ShowOnLanding,
	}
}

func FromCouponSnapshots(snaps []*shared.CouponSnapshot) []*CouponResponse {
	result := make([]*CouponResponse, len(snaps))
	for i, s := range snaps {
		result[i] = FromCouponSnapshot(s)
	}
	return result
}
