package settings

// DayHours bounds the bookable window for one weekday, in whole hours.
type DayHours struct {
	OpenHour  int `json:"openHour"`
	CloseHour int `json:"closeHour"`
}

// Snapshot is the App Settings row as seen by one request. It is fetched once
// per request and passed by value through the hold manager, TTL policy and
// availability resolver; nothing in the booking core ever writes it.
type Snapshot struct {
	HoldTTLOnlineMin       int
	HoldTTLLastMinuteMin   int
	HoldTTLPeakMin         int
	HoldTTLOnsiteBeforeMin int
	HoldTTLOnsiteGraceMin  int

	PeakStartHour          int
	PeakEndHour            int
	LastMinuteThresholdMin int

	SlotIntervalMin int

	// OpeningHours is indexed by time.Weekday (Sunday = 0).
	OpeningHours [7]DayHours
}

// Defaults mirrors the seeded app_settings row.
func Defaults() Snapshot {
	var hours [7]DayHours
	for i := range hours {
		hours[i] = DayHours{OpenHour: 10, CloseHour: 23}
	}
	return Snapshot{
		HoldTTLOnlineMin:       15,
		HoldTTLLastMinuteMin:   7,
		HoldTTLPeakMin:         10,
		HoldTTLOnsiteBeforeMin: 45,
		HoldTTLOnsiteGraceMin:  7,
		PeakStartHour:          17,
		PeakEndHour:            22,
		LastMinuteThresholdMin: 60,
		SlotIntervalMin:        60,
		OpeningHours:           hours,
	}
}
