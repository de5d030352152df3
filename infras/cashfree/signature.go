package cashfree

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Sign computes the webhook signature: base64(HMAC-SHA256(secret, timestamp + body)).
func Sign(secret, timestamp string, rawBody []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write(rawBody)

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySignature fails closed when the secret, timestamp or signature is missing.
func VerifySignature(secret, timestamp, signature string, rawBody []byte) bool {
	if secret == "" || timestamp == "" || signature == "" {
		return false
	}

	expected := Sign(secret, timestamp, rawBody)

	return hmac.Equal([]byte(expected), []byte(signature))
}
