package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func signPayload(t, secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(t))
	mac.Write([]byte("."))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyStripeSignature(t *testing.T) {
	secret := "whsec_test"
	payload := []byte(`{"type":"payment_intent.succeeded"}`)
	sig := signPayload("1492774577", secret, payload)

	t.Run("Valid", func(t *testing.T) {
		header := "t=1492774577,v1=" + sig
		assert.True(t, VerifyStripeSignature(header, payload, secret))
	})

	t.Run("ValidAmongMultipleSignatures", func(t *testing.T) {
		header := "t=1492774577,v1=deadbeef,v1=" + sig
		assert.True(t, VerifyStripeSignature(header, payload, secret))
	})

	t.Run("WrongSecret", func(t *testing.T) {
		header := "t=1492774577,v1=" + sig
		assert.False(t, VerifyStripeSignature(header, payload, "whsec_other"))
	})

	t.Run("TamperedPayload", func(t *testing.T) {
		header := "t=1492774577,v1=" + sig
		assert.False(t, VerifyStripeSignature(header, []byte(`{}`), secret))
	})

	t.Run("MissingParts", func(t *testing.T) {
		assert.False(t, VerifyStripeSignature("", payload, secret))
		assert.False(t, VerifyStripeSignature("t=1492774577", payload, secret))
		assert.False(t, VerifyStripeSignature("v1="+sig, payload, secret))
	})
}

func runWebhookAuth(t *testing.T, payload []byte, sigHeader string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhook/stripe", bytes.NewBuffer(payload))
	if sigHeader != "" {
		c.Request.Header.Set("Stripe-Signature", sigHeader)
	}
	StripeWebhookAuth()(c)
	return c, w
}

func TestStripeWebhookAuth(t *testing.T) {
	payload := []byte(`{"type":"payment_intent.succeeded"}`)

	t.Run("PassesVerifiedDelivery", func(t *testing.T) {
		t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test")
		sig := signPayload("1492774577", "whsec_test", payload)

		c, w := runWebhookAuth(t, payload, "t=1492774577,v1="+sig)

		assert.False(t, c.IsAborted())
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("RejectsBadSignature", func(t *testing.T) {
		t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test")

		c, w := runWebhookAuth(t, payload, "t=1492774577,v1=deadbeef")

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("UnconfiguredSecretRefusesWithoutPanicking", func(t *testing.T) {
		t.Setenv("STRIPE_WEBHOOK_SECRET", "")

		assert.NotPanics(t, func() {
			c, w := runWebhookAuth(t, payload, "")
			assert.True(t, c.IsAborted())
			assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		})
	})
}
