package resource

// Type enumerates the kinds of bookable venue resources.
type Type string

const (
	TypeBowlingLane    Type = "BOWLING_LANE"
	TypeBilliardsTable Type = "BILLIARDS_TABLE"
	TypeQuizRoom       Type = "QUIZ_ROOM"
	TypeKaraokeRoom    Type = "KARAOKE_ROOM"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeBowlingLane, TypeBilliardsTable, TypeQuizRoom, TypeKaraokeRoom:
		return true
	}
	return false
}

// PricingMode selects how a resource's base price turns into a line amount.
type PricingMode string

const (
	PricePerResourcePerHour  PricingMode = "PER_RESOURCE_PER_HOUR"
	PricePerPersonPerHour    PricingMode = "PER_PERSON_PER_HOUR"
	PricePerPersonPerSession PricingMode = "PER_PERSON_PER_SESSION"
)

func (m PricingMode) String() string {
	return string(m)
}

func (m PricingMode) IsValid() bool {
	switch m {
	case PricePerResourcePerHour, PricePerPersonPerHour, PricePerPersonPerSession:
		return true
	}
	return false
}
