package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// SignatureHeader is the HTTP header PagerDuty signs deliveries with.
const SignatureHeader = "X-PagerDuty-Signature"

// parseSignatureHeader extracts the hex-decoded v1 signatures from a header
// of comma-separated key=value pairs. Entries with other keys or invalid hex
// are skipped.
func parseSignatureHeader(header string) [][]byte {
	var signatures [][]byte
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(part, "=")
		if !found || key != "v1" {
			continue
		}
		sig, err := hex.DecodeString(value)
		if err != nil {
			continue
		}
		signatures = append(signatures, sig)
	}
	return signatures
}

// verifySignature reports whether any signature offered in the header matches
// the HMAC-SHA256 of the raw body under any configured secret. It must run
// over the literal bytes received on the wire: reparsing and reserializing
// the JSON could change the byte sequence and invalidate the signature.
//
// Comparison uses crypto/subtle to avoid timing side channels.
func (r *Resource) verifySignature(body []byte, header string) bool {
	offered := parseSignatureHeader(header)
	if len(offered) == 0 {
		return false
	}

	computed := make([][]byte, len(r.secrets))
	for i, secret := range r.secrets {
		mac := hmac.New(sha256.New, secret)
		mac.Write(body)
		computed[i] = mac.Sum(nil)
	}

	for _, offer := range offered {
		for _, want := range computed {
			if subtle.ConstantTimeCompare(offer, want) == 1 {
				return true
			}
		}
	}
	return false
}
