package fiat

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/LedgerPay/LedgerPay-Backend/providers"
	"github.com/LedgerPay/LedgerPay-Backend/services/monitoring/logging"
	"github.com/LedgerPay/LedgerPay-Backend/utils"
	"github.com/shopspring/decimal"
)

var kobosPerNaira = decimal.NewFromInt(100)

type PaystackProvider struct {
	providers.BaseProvider
	config *FiatConfig
}

type FiatConfig struct {
	FiatProviderName    string `mapstructure:"FIAT_PROVIDER_NAME"`
	FiatProviderKey     string `mapstructure:"PAYSTACK_KEY"`
	FiatProviderBaseUrl string `mapstructure:"PAYSTACK_BASE_URL"`
	FiatCallbackUrl     string `mapstructure:"PAYSTACK_CALLBACK_URL"`
}

func NewFiatProvider(envPath string, logger *logging.Logger) *PaystackProvider {

	var c FiatConfig

	err := utils.LoadCustomConfig(envPath, &c)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	if c.FiatProviderName == "" {
		c.FiatProviderName = providers.Paystack
	}
	if c.FiatProviderBaseUrl == "" {
		c.FiatProviderBaseUrl = "https://api.paystack.co/"
	}

	return &PaystackProvider{
		BaseProvider: providers.BaseProvider{
			Name:    c.FiatProviderName,
			BaseURL: c.FiatProviderBaseUrl,
			APIKey:  c.FiatProviderKey,
			Client: &http.Client{
				Timeout: time.Second * 30,
			},
			Logger: logger,
		},
		config: &c,
	}
}

// InitializeTransaction asks Paystack for a checkout session for the given
// reference. Amount is in kobo. Returns the hosted payment page URL.
func (p *PaystackProvider) InitializeTransaction(email string, amountKobo int64, reference string) (string, error) {
	base, err := url.Parse(p.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base url: %w", err)
	}

	// Path params
	base.Path += "transaction/initialize"

	request := InitializeTransactionRequest{
		Email:       email,
		Amount:      amountKobo,
		Reference:   reference,
		CallbackURL: p.config.FiatCallbackUrl,
	}

	resp, err := p.MakeRequest("POST", base.String(), request, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	// Check the status code
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d \nURL: %s", resp.StatusCode, resp.Request.URL)
	}

	// Decode the response body
	var response Response[InitializedTransaction]
	decoder := json.NewDecoder(resp.Body)
	err = decoder.Decode(&response)
	if err != nil {
		return "", fmt.Errorf("error decoding response body: %w", err)
	}

	if !response.Status {
		return "", fmt.Errorf("paystack error: %s", response.Message)
	}

	return response.Data.AuthorizationURL, nil
}

// VerifyTransaction fetches the definitive status of a reference straight
// from Paystack. Used instead of trusting client-supplied status claims.
func (p *PaystackProvider) VerifyTransaction(reference string) (string, int64, error) {
	base, err := url.Parse(p.BaseURL)
	if err != nil {
		return "", 0, fmt.Errorf("parsing base url: %w", err)
	}

	// Path params
	base.Path += "transaction/verify/" + reference

	resp, err := p.MakeRequest("GET", base.String(), nil, nil)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	// Check the status code
	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("unexpected status code: %d \nURL: %s", resp.StatusCode, resp.Request.URL)
	}

	// Decode the response body
	var response Response[VerifiedTransaction]
	decoder := json.NewDecoder(resp.Body)
	err = decoder.Decode(&response)
	if err != nil {
		return "", 0, fmt.Errorf("error decoding response body: %w", err)
	}

	if !response.Status {
		return "", 0, fmt.Errorf("paystack verification error: %s", response.Message)
	}

	return response.Data.Status, response.Data.Amount, nil
}

// VerifyWebhookSignature checks the x-paystack-signature header: an
// HMAC-SHA512 of the raw request body keyed with the secret key, hex
// encoded. Comparison is constant time.
func (p *PaystackProvider) VerifyWebhookSignature(payload []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(p.APIKey))
	mac.Write(payload)
	computed := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(computed), []byte(signature))
}

// KoboToNaira converts Paystack's minor unit to the ledger's major unit.
func KoboToNaira(amountKobo int64) decimal.Decimal {
	return decimal.NewFromInt(amountKobo).Div(kobosPerNaira)
}

// NairaToKobo converts a ledger amount to Paystack's minor unit.
func NairaToKobo(amount decimal.Decimal) int64 {
	return amount.Mul(kobosPerNaira).IntPart()
}
