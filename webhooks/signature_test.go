package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return fmt.Sprintf("v1=%s", hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"event":{"id":"x"}}`)

	cases := []struct {
		name    string
		secrets []string
		header  string
		want    bool
	}{
		{"valid", []string{"secret1"}, sign("secret1", body), true},
		{"wrong secret", []string{"secret1"}, sign("nope", body), false},
		{"rotation old secret", []string{"secret1", "secret2"}, sign("secret1", body), true},
		{"rotation new secret", []string{"secret1", "secret2"}, sign("secret2", body), true},
		{"rotation unknown secret", []string{"secret1", "secret2"}, sign("secret3", body), false},
		{"multiple offered one valid", []string{"secret1"}, sign("nope", body) + "," + sign("secret1", body), true},
		{"missing header", []string{"secret1"}, "", false},
		{"garbage header", []string{"secret1"}, "v1=nothexatall", false},
		{"wrong version key", []string{"secret1"}, "v2=" + sign("secret1", body)[3:], false},
		{"no key value shape", []string{"secret1"}, "justtext", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resource, err := NewResource(tc.secrets...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resource.verifySignature(body, tc.header))
		})
	}
}

func TestVerifySignatureBodySensitivity(t *testing.T) {
	resource, err := NewResource("secret1")
	require.NoError(t, err)

	body := []byte(`{"a":1}`)
	header := sign("secret1", body)

	assert.True(t, resource.verifySignature(body, header))
	// Any change to the raw bytes invalidates the signature, including
	// whitespace that would survive a JSON round trip.
	assert.False(t, resource.verifySignature([]byte(`{"a": 1}`), header))
}

func TestParseSignatureHeader(t *testing.T) {
	sigs := parseSignatureHeader("v1=00ff,v2=aaaa,v1=zz,v1=0102")
	require.Len(t, sigs, 2)
	assert.Equal(t, []byte{0x00, 0xff}, sigs[0])
	assert.Equal(t, []byte{0x01, 0x02}, sigs[1])
}

func TestNewResourceRequiresSecret(t *testing.T) {
	_, err := NewResource()
	assert.Error(t, err)
}
