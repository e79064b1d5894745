package utils

import (
	"encoding/json"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// qrPayload is the structured payload embedded in a record's QR code.
type qrPayload struct {
	RecordID  string `json:"record_id"`
	TxHash    string `json:"tx_hash"`
	VerifyURL string `json:"verify_url"`
}

// GenerateQRCode renders a PNG QR code linking to the public verification
// page for a record. txHash may be empty when notarization failed.
// Payloads that exceed QR capacity return an error, never a truncated code.
func GenerateQRCode(recordID, txHash, baseURL string) ([]byte, error) {
	payload := qrPayload{
		RecordID:  recordID,
		TxHash:    txHash,
		VerifyURL: fmt.Sprintf("%s/verify/%s", baseURL, recordID),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR payload: %w", err)
	}

	png, err := qrcode.Encode(string(data), qrcode.Low, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}
