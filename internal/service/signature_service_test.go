package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"

	"dealer-payment-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVNPaySignatureCodec_SignDeterministic(t *testing.T) {
	codec := NewVNPaySignatureCodec("secret")

	params := map[string]string{
		"vnp_TxnRef":  "VNP20250315103000",
		"vnp_Amount":  "5000000",
		"vnp_TmnCode": "TESTTMN",
	}

	sig1 := codec.Sign(params)
	sig2 := codec.Sign(params)
	assert.Equal(t, sig1, sig2)
	assert.Equal(t, strings.ToUpper(sig1), sig1, "signature must be uppercase hex")
	assert.Len(t, sig1, 128) // SHA-512 hex
}

func TestVNPaySignatureCodec_CanonicalOrder(t *testing.T) {
	codec := NewVNPaySignatureCodec("secret")

	// Insertion order must not matter.
	a := map[string]string{"vnp_A": "1", "vnp_B": "2", "vnp_C": "3"}
	b := map[string]string{"vnp_C": "3", "vnp_A": "1", "vnp_B": "2"}
	assert.Equal(t, codec.Sign(a), codec.Sign(b))

	// The canonical payload is lexicographically sorted and query-escaped.
	mac := hmac.New(sha512.New, []byte("secret"))
	mac.Write([]byte("vnp_A=1&vnp_B=2&vnp_C=3"))
	expected := strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))
	assert.Equal(t, expected, codec.Sign(a))
}

func TestVNPaySignatureCodec_ExcludesSignatureFields(t *testing.T) {
	codec := NewVNPaySignatureCodec("secret")

	base := map[string]string{"vnp_TxnRef": "VNP1", "vnp_Amount": "100"}
	withHash := map[string]string{
		"vnp_TxnRef":         "VNP1",
		"vnp_Amount":         "100",
		"vnp_SecureHash":     "ABCDEF",
		"vnp_SecureHashType": "HmacSHA512",
	}
	assert.Equal(t, codec.Sign(base), codec.Sign(withHash))
}

func TestVNPaySignatureCodec_SkipsEmptyValues(t *testing.T) {
	codec := NewVNPaySignatureCodec("secret")

	withEmpty := map[string]string{"vnp_TxnRef": "VNP1", "vnp_BankCode": ""}
	without := map[string]string{"vnp_TxnRef": "VNP1"}
	assert.Equal(t, codec.Sign(without), codec.Sign(withEmpty))
}

func TestVNPaySignatureCodec_EscapesValues(t *testing.T) {
	codec := NewVNPaySignatureCodec("secret")

	params := map[string]string{"vnp_OrderInfo": "thanh toan don hang"}
	mac := hmac.New(sha512.New, []byte("secret"))
	mac.Write([]byte("vnp_OrderInfo=thanh+toan+don+hang"))
	expected := strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))
	assert.Equal(t, expected, codec.Sign(params))
}

func TestVNPaySignatureCodec_Verify(t *testing.T) {
	codec := NewVNPaySignatureCodec("secret")

	fields := map[string]string{"vnp_TxnRef": "VNP1", "vnp_Amount": "100"}
	sig := codec.Sign(fields)

	params := domain.CallbackParams{"vnp_TxnRef": "VNP1", "vnp_Amount": "100", "vnp_SecureHash": sig}

	assert.True(t, codec.Verify(params, sig))
	// Case-insensitive on the received signature.
	assert.True(t, codec.Verify(params, strings.ToLower(sig)))
	// Tampering any field breaks verification.
	params["vnp_Amount"] = "999"
	assert.False(t, codec.Verify(params, sig))
}

func TestVNPaySignatureCodec_VerifyRejectsDegenerateInput(t *testing.T) {
	codec := NewVNPaySignatureCodec("secret")

	// Empty signature never verifies.
	assert.False(t, codec.Verify(domain.CallbackParams{"vnp_TxnRef": "VNP1"}, ""))

	// Empty parameter set never verifies, even with a "valid" signature
	// over nothing.
	sig := codec.Sign(map[string]string{})
	assert.False(t, codec.Verify(domain.CallbackParams{}, sig))
	assert.False(t, codec.Verify(domain.CallbackParams{"vnp_SecureHash": sig}, sig))
}

func TestVNPaySignatureCodec_DifferentSecrets(t *testing.T) {
	a := NewVNPaySignatureCodec("secret-a")
	b := NewVNPaySignatureCodec("secret-b")

	fields := map[string]string{"vnp_TxnRef": "VNP1"}
	sig := a.Sign(fields)
	assert.False(t, b.Verify(domain.CallbackParams{"vnp_TxnRef": "VNP1"}, sig))
}

func TestSePayWebhookVerifier_APIKey(t *testing.T) {
	v := NewSePayWebhookVerifier("my-key", "")

	assert.True(t, v.VerifyAPIKey("Apikey my-key"))
	assert.False(t, v.VerifyAPIKey("Apikey wrong"))
	assert.False(t, v.VerifyAPIKey("Bearer my-key"))
	assert.False(t, v.VerifyAPIKey(""))
	assert.False(t, v.VerifyAPIKey("my-key"))
}

func TestSePayWebhookVerifier_NoConfiguredKeyPassesAll(t *testing.T) {
	v := NewSePayWebhookVerifier("", "")
	assert.True(t, v.VerifyAPIKey(""))
	assert.True(t, v.VerifyAPIKey("Apikey anything"))
}

func TestSePayWebhookVerifier_Payload(t *testing.T) {
	v := NewSePayWebhookVerifier("key", "body-secret")
	require.True(t, v.SignatureRequired())

	payload := []byte(`{"transferAmount": 50000}`)
	mac := hmac.New(sha256.New, []byte("body-secret"))
	mac.Write(payload)
	sig := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, v.VerifyPayload(payload, sig))
	// Case-insensitive on the received signature.
	assert.True(t, v.VerifyPayload(payload, strings.ToUpper(sig)))
	assert.False(t, v.VerifyPayload(payload, "00"+sig[2:]))
	assert.False(t, v.VerifyPayload([]byte{}, sig))
	assert.False(t, v.VerifyPayload(payload, ""))
}

func TestSePayWebhookVerifier_SignatureNotRequiredWithoutSecret(t *testing.T) {
	v := NewSePayWebhookVerifier("key", "")
	assert.False(t, v.SignatureRequired())
}
