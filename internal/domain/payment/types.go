package payment

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusSuccess   Status = "SUCCESS"
	StatusFailed    Status = "FAILED"
	StatusAbandoned Status = "ABANDONED"
	StatusTimedOut  Status = "TIMED_OUT"
	StatusRefunded  Status = "REFUNDED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSuccess, StatusFailed, StatusAbandoned, StatusTimedOut, StatusRefunded:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status ends the transaction's lifecycle.
// PENDING is the only non-terminal state.
func (s Status) IsTerminal() bool {
	return s != StatusPending && s.IsValid()
}
