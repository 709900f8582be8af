package order

type PaymentMethod string

const (
	PayOnline     PaymentMethod = "ONLINE"
	PayOnSiteCash PaymentMethod = "ON_SITE_CASH"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PayOnline, PayOnSiteCash:
		return true
	default:
		return false
	}
}
