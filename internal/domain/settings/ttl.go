package settings

import (
	"time"

	"leisure-booking-api/internal/domain/order"
)

// HoldTTL maps a booking channel and time context to a hold duration in
// minutes. Pure function over the snapshot.
//
// On-site: the customer must show up, so the hold runs until shortly before
// the slot starts; once within the grace window (or past the start) only the
// short grace TTL remains.
//
// Online: last-minute wins over peak-hours. A booking made inside the
// last-minute threshold during peak time gets the last-minute TTL, not the
// peak one; the customer has no time for a long hold either way.
func HoldTTL(channel order.PaymentMethod, now, slotStart time.Time, s Snapshot) int {
	if channel == order.PayOnSiteCash {
		graceWindow := time.Duration(s.HoldTTLOnsiteGraceMin) * time.Minute
		if now.Before(slotStart.Add(-graceWindow)) {
			return s.HoldTTLOnsiteBeforeMin
		}
		return s.HoldTTLOnsiteGraceMin
	}

	untilStart := slotStart.Sub(now)
	if untilStart <= time.Duration(s.LastMinuteThresholdMin)*time.Minute {
		return s.HoldTTLLastMinuteMin
	}
	if h := slotStart.Hour(); h >= s.PeakStartHour && h < s.PeakEndHour {
		return s.HoldTTLPeakMin
	}
	return s.HoldTTLOnlineMin
}
