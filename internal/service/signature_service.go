package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"

	"dealer-payment-service/internal/core/domain"
)

// Fields excluded from the VNPay canonical string. The signature never
// covers itself.
const (
	vnpFieldSecureHash     = "vnp_SecureHash"
	vnpFieldSecureHashType = "vnp_SecureHashType"
)

// VNPaySignatureCodec implements ports.ParamSigner for the redirect
// gateway: sorted keys, URL-encoded values, HMAC-SHA512, uppercase hex.
type VNPaySignatureCodec struct {
	secret string
}

// NewVNPaySignatureCodec creates a codec bound to the gateway secret.
func NewVNPaySignatureCodec(secret string) *VNPaySignatureCodec {
	return &VNPaySignatureCodec{secret: secret}
}

// Sign computes the signature over params, excluding the signature
// fields themselves.
func (c *VNPaySignatureCodec) Sign(params map[string]string) string {
	payload := canonicalQuery(params)
	mac := hmac.New(sha512.New, []byte(c.secret))
	mac.Write([]byte(payload))
	return strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))
}

// Verify recomputes the signature over the received parameter set and
// compares in constant time. An empty parameter set never verifies.
func (c *VNPaySignatureCodec) Verify(params domain.CallbackParams, signature string) bool {
	if signature == "" {
		return false
	}
	if len(stripSignatureFields(params)) == 0 {
		return false
	}
	expected := c.Sign(params)
	return hmac.Equal([]byte(expected), []byte(strings.ToUpper(signature)))
}

// canonicalQuery builds the signing payload: lexicographic key order,
// query-escaped values, k=v pairs joined with '&'. Empty values and the
// signature fields are skipped.
func canonicalQuery(params map[string]string) string {
	clean := stripSignatureFields(params)
	keys := make([]string, 0, len(clean))
	for k := range clean {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(clean[k]))
	}
	return sb.String()
}

func stripSignatureFields(params map[string]string) map[string]string {
	clean := make(map[string]string, len(params))
	for k, v := range params {
		if k == vnpFieldSecureHash || k == vnpFieldSecureHashType || v == "" {
			continue
		}
		clean[k] = v
	}
	return clean
}

// SePayWebhookVerifier implements ports.PayloadVerifier for the QR
// gateway: an API-key header check plus an optional HMAC-SHA256 body
// signature when a webhook secret is configured.
type SePayWebhookVerifier struct {
	apiKey        string
	webhookSecret string
}

// NewSePayWebhookVerifier creates a verifier bound to the configured
// API key and optional webhook secret.
func NewSePayWebhookVerifier(apiKey, webhookSecret string) *SePayWebhookVerifier {
	return &SePayWebhookVerifier{apiKey: apiKey, webhookSecret: webhookSecret}
}

// VerifyAPIKey checks an "Apikey <key>" Authorization header in
// constant time. When no API key is configured, every header passes.
func (v *SePayWebhookVerifier) VerifyAPIKey(authorization string) bool {
	if v.apiKey == "" {
		return true
	}
	const scheme = "Apikey "
	if !strings.HasPrefix(authorization, scheme) {
		return false
	}
	got := strings.TrimPrefix(authorization, scheme)
	return hmac.Equal([]byte(got), []byte(v.apiKey))
}

// VerifyPayload checks the HMAC-SHA256 body signature. An empty payload
// never verifies.
func (v *SePayWebhookVerifier) VerifyPayload(payload []byte, signature string) bool {
	if len(payload) == 0 || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(v.webhookSecret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}

// SignatureRequired reports whether webhook bodies must carry a signature.
func (v *SePayWebhookVerifier) SignatureRequired() bool {
	return v.webhookSecret != ""
}
