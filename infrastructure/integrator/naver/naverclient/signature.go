package naverclient

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Sign gera o X-Signature: base64(HMAC-SHA256(secret, "{timestamp}.{method}.{path}"))
func Sign(secretKey, timestamp, method, path string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(timestamp + "." + method + "." + path))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
