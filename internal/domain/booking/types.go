package booking

type Status string

const (
	StatusHold      Status = "HOLD"
	StatusBooked    Status = "BOOKED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusHold, StatusBooked, StatusCancelled:
		return true
	default:
		return false
	}
}
