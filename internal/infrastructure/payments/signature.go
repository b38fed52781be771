package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// WebhookVerifier authenticates processor webhook notifications.
//
// The processor signs rawBody||timestamp with the shared secret (HMAC-SHA256) and
// sends the hex digest in the signature header. The raw body must be verified
// before it is ever parsed.

type WebhookVerifier struct {
	secret []byte
}

func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{secret: []byte(secret)}
}

// Verify reports whether signature matches the expected digest for rawBody and
// timestamp. Comparison is constant-time.
func (v *WebhookVerifier) Verify(rawBody []byte, timestamp, signature string) bool {
	expected := v.sign(rawBody, timestamp)
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (v *WebhookVerifier) sign(rawBody []byte, timestamp string) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(rawBody)
	mac.Write([]byte(timestamp))
	return hex.EncodeToString(mac.Sum(nil))
}

// Sign computes the hex signature for rawBody and timestamp. Exposed for tests
// and for local tooling that replays notifications.
func (v *WebhookVerifier) Sign(rawBody []byte, timestamp string) string {
	return v.sign(rawBody, timestamp)
}
