package paymentControllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

const stripeBaseURL = "https://api.stripe.com/v1"

// Pinned so the ephemeral key stays compatible with the mobile SDK.
const stripeAPIVersion = "2023-10-16"

var stripeClient = &http.Client{Timeout: 20 * time.Second}

var ErrStripeRequest = errors.New("stripe request failed")

func stripeSecretKey() string {
	return os.Getenv("STRIPE_SECRET_KEY")
}

// stripePost sends a form-encoded request to the Stripe API and decodes
// the JSON response into out. Non-2xx responses surface the Stripe error
// message wrapped in ErrStripeRequest.
func stripePost(ctx context.Context, path string, form url.Values, idempotencyKey string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, stripeBaseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(stripeSecretKey(), "")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Stripe-Version", stripeAPIVersion)
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := stripeClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.Unmarshal(body, &apiErr)
		return fmt.Errorf("%w: %s (%d)", ErrStripeRequest, apiErr.Error.Message, resp.StatusCode)
	}

	return json.Unmarshal(body, out)
}

func createStripeCustomer(ctx context.Context, name, email string) (string, error) {
	form := url.Values{}
	form.Set("name", name)
	form.Set("email", email)

	var out struct {
		ID string `json:"id"`
	}
	if err := stripePost(ctx, "/customers", form, "", &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func createEphemeralKey(ctx context.Context, customerID string) (string, error) {
	form := url.Values{}
	form.Set("customer", customerID)

	var out struct {
		Secret string `json:"secret"`
	}
	if err := stripePost(ctx, "/ephemeral_keys", form, "", &out); err != nil {
		return "", err
	}
	return out.Secret, nil
}

type paymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

// createPaymentIntent opens an intent for the given order. The amount is
// in the currency's smallest unit. The order ID rides along as metadata so
// the webhook can find its way back, and the idempotency key pins retries
// of the same order to one intent.
func createPaymentIntent(ctx context.Context, amountMinor int64, currency, customerID string, orderID uint) (paymentIntent, error) {
	form := url.Values{}
	form.Set("amount", fmt.Sprintf("%d", amountMinor))
	form.Set("currency", currency)
	form.Set("customer", customerID)
	form.Set("automatic_payment_methods[enabled]", "true")
	form.Set("metadata[order_id]", fmt.Sprintf("%d", orderID))

	idempotencyKey := uuid.NewString()

	var out paymentIntent
	if err := stripePost(ctx, "/payment_intents", form, idempotencyKey, &out); err != nil {
		return paymentIntent{}, err
	}
	return out, nil
}
