package helper

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// TokenFingerprint: HMAC-SHA256(token) hex. Blacklist menyimpan fingerprint,
// bukan token mentah.
func TokenFingerprint(rawToken, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(rawToken))
	return hex.EncodeToString(m.Sum(nil))
}
