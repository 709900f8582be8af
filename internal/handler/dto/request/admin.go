package request

import (
	"time"

	"leisure-booking-api/internal/domain/coupon"
	"leisure-booking-api/internal/domain/resource"
	"leisure-booking-api/internal/domain/settings"
	"leisure-booking-api/internal/usecase/commands"
)

type DayHoursRequest struct {
	OpenHour  int `json:"openHour" binding:"min=0,max=24"`
	CloseHour int `json:"closeHour" binding:"min=0,max=24"`
}

type UpdateSettingsRequest struct {
	HoldTTLOnlineMin       int `json:"holdTtlOnlineMin" binding:"required,min=1"`
	HoldTTLLastMinuteMin   int `json:"holdTtlLastMinuteMin" binding:"required,min=1"`
	HoldTTLPeakMin         int `json:"holdTtlPeakMin" binding:"required,min=1"`
	HoldTTLOnsiteBeforeMin int `json:"holdTtlOnsiteBeforeMin" binding:"required,min=1"`
	HoldTTLOnsiteGraceMin  int `json:"holdTtlOnsiteGraceMin" binding:"required,min=1"`

	PeakStartHour          int `json:"peakStartHour" binding:"min=0,max=23"`
	PeakEndHour            int `json:"peakEndHour" binding:"min=1,max=24"`
	LastMinuteThresholdMin int `json:"lastMinuteThresholdMin" binding:"required,min=1"`

	SlotIntervalMin int `json:"slotIntervalMin" binding:"required,min=1"`

	OpeningHours [7]DayHoursRequest `json:"openingHours" binding:"required"`
}

func (r UpdateSettingsRequest) ToSnapshot() settings.Snapshot {
	var hours [7]settings.DayHours
	for i, h := range r.OpeningHours {
		hours[i] = settings.DayHours{OpenHour: h.OpenHour, CloseHour: h.CloseHour}
	}
	return settings.Snapshot{
		HoldTTLOnlineMin:       r.HoldTTLOnlineMin,
		HoldTTLLastMinuteMin:   r.HoldTTLLastMinuteMin,
		HoldTTLPeakMin:         r.HoldTTLPeakMin,
		HoldTTLOnsiteBeforeMin: r.HoldTTLOnsiteBeforeMin,
		HoldTTLOnsiteGraceMin:  r.HoldTTLOnsiteGraceMin,
		PeakStartHour:          r.PeakStartHour,
		PeakEndHour:            r.PeakEndHour,
		LastMinuteThresholdMin: r.LastMinuteThresholdMin,
		SlotIntervalMin:        r.SlotIntervalMin,
		OpeningHours:           hours,
	}
}

type CreateCouponRequest struct {
	Code          string     `json:"code" binding:"required"`
	Type          string     `json:"type" binding:"required,oneof=PERCENT FIXED"`
	Value         int64      `json:"value" binding:"required,min=1"`
	EligibleTypes []string   `json:"eligibleTypes,omitempty"`
	ValidFrom     *time.Time `json:"validFrom,omitempty"`
	ValidTo       *time.Time `json:"validTo,omitempty"`
	MaxUses       *int32     `json:"maxUses,omitempty" binding:"omitempty,min=1"`
	MinSpendCents *int64     `json:"minSpendCents,omitempty" binding:"omitempty,min=0"`
	ShowOnLanding bool       `json:"showOnLanding"`
}

func (r CreateCouponRequest) ToParams() commands.CreateCouponParams {
	eligible := make([]resource.Type, len(r.EligibleTypes))
	for i, t := range r.EligibleTypes {
		eligible[i] = resource.Type(t)
	}
	return commands.CreateCouponParams{
		Code:          r.Code,
		Type:          coupon.Type(r.Type),
		Value:         r.Value,
		EligibleTypes: eligible,
		ValidFrom:     r.ValidFrom,
		ValidTo:       r.ValidTo,
		MaxUses:       r.MaxUses,
		MinSpendCents: r.MinSpendCents,
		ShowOnLanding: r.ShowOnLanding,
	}
}

type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}
