package order

import (
	"crypto/rand"
	"fmt"
	"time"
)

const numberAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewNumber produces a human-readable order number like BK-20260901-7GK2QF.
// The suffix alphabet drops lookalike characters so the number can be read
// over the phone at the front desk.
func NewNumber(now time.Time) string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is effectively fatal elsewhere; degrade to a
		// timestamp-derived suffix rather than panic here.
		n := now.UnixNano()
		for i := range buf {
			buf[i] = byte(n >> (i * 8))
		}
	}
	suffix := make([]byte, len(buf))
	for i, b := range buf {
		suffix[i] = numberAlphabet[int(b)%len(numberAlphabet)]
	}
	return fmt.Sprintf("BK-%s-%s", now.Format("20060102"), string(suffix))
}
