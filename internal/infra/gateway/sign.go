package gateway

import (
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
)

// The provider signs payloads with SHA-384 over a canonical JSON document
// that ends with the shared CRC secret. Field order matters, so the documents
// are built from ordered structs rather than maps.

type registrationSignDoc struct {
	SessionID  string `json:"sessionId"`
	MerchantID int64  `json:"merchantId"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
	CRC        string `json:"crc"`
}

type notificationSignDoc struct {
	MerchantID int64  `json:"merchantId"`
	PosID      int64  `json:"posId"`
	SessionID  string `json:"sessionId"`
	OrderID    int64  `json:"orderId"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
	CRC        string `json:"crc"`
}

type verificationSignDoc struct {
	SessionID string `json:"sessionId"`
	OrderID   int64  `json:"orderId"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	CRC       string `json:"crc"`
}

func signDoc(doc any) string {
	raw, err := json.Marshal(doc)
	if err != nil {
		return ""
	}
	sum := sha512.Sum384(raw)
	return hex.EncodeToString(sum[:])
}
