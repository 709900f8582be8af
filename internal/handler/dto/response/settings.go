package response

import (
	"leisure-booking-api/internal/domain/settings"
)

type DayHoursResponse struct {
	OpenHour  int `json:"openHour"`
	CloseHour int `json:"closeHour"`
}

type SettingsResponse struct {
	HoldTTLOnlineMin       int `json:"holdTtlOnlineMin"`
	HoldTTLLastMinuteMin   int `json:"holdTtlLastMinuteMin"`
	HoldTTLPeakMin         int `json:"holdTtlPeakMin"`
	HoldTTLOnsiteBeforeMin int `json:"holdTtlOnsiteBeforeMin"`
	HoldTTLOnsiteGraceMin  int `json:"holdTtlOnsiteGraceMin"`

	PeakStartHour          int `json:"peakStartHour"`
	PeakEndHour            int `json:"peakEndHour"`
	LastMinuteThresholdMin int `json:"lastMinuteThresholdMin"`

	SlotIntervalMin int `json:"slotIntervalMin"`

	OpeningHours [7]DayHoursResponse `json:"openingHours"`
}

func FromSettings(s settings.Snapshot) SettingsResponse {
	var hours [7]DayHoursResponse
	for i, h := range s.OpeningHours {
		hours[i] = DayHoursResponse{OpenHour: h.OpenHour, CloseHour: h.CloseHour}
	}
	return SettingsResponse{
		HoldTTLOnlineMin:       s.HoldTTLOnlineMin,
		HoldTTLLastMinuteMin:   s.HoldTTLLastMinuteMin,
		HoldTTLPeakMin:         s.HoldTTLPeakMin,
		HoldTTLOnsiteBeforeMin: s.HoldTTLOnsiteBeforeMin,
		HoldTTLOnsiteGraceMin:  s.HoldTTLOnsiteGraceMin,
		PeakStartHour:          s.PeakStartHour,
		PeakEndHour:            s.PeakEndHour,
		LastMinuteThresholdMin: s.LastMinuteThresholdMin,
		SlotIntervalMin:        s.SlotIntervalMin,
		OpeningHours:           hours,
	}
}
