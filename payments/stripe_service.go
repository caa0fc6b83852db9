package payments

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	config "github.com/asifrahman/collab_study/configs"
)

type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

var stripeClient = &http.Client{Timeout: 10 * time.Second}

func stripeAPIBase() string {
	if base := config.Config("STRIPE_API_BASE_URL"); base != "" {
		return base
	}
	return "https://api.stripe.com"
}

// CreatePaymentIntent registers a card charge for the given amount (in the
// currency's smallest unit) and returns the intent the client confirms against.
func CreatePaymentIntent(amountCents int64, currency string) (*PaymentIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", currency)
	form.Set("payment_method_types[]", "card")

	req, err := http.NewRequest("POST", fmt.Sprintf("%s/v1/payment_intents", stripeAPIBase()), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", config.Config("STRIPE_SECRET_KEY")))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := stripeClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to create payment intent: %s", string(respBody))
	}

	var intent PaymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// RetrievePaymentIntent fetches the processor's view of an intent so callers
// can verify status and amount before trusting a client-reported payment.
func RetrievePaymentIntent(intentID string) (*PaymentIntent, error) {
	req, err := http.NewRequest("GET", fmt.Sprintf("%s/v1/payment_intents/%s", stripeAPIBase(), url.PathEscape(intentID)), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", config.Config("STRIPE_SECRET_KEY")))

	resp, err := stripeClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to retrieve payment intent: %s", string(respBody))
	}

	var intent PaymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, err
	}
	return &intent, nil
}
