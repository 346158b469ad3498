package notification

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/LedgerPay/LedgerPay-Backend/utils"
	"github.com/shopspring/decimal"
)

// Plunk is a thin client for the Plunk transactional email API. Every send
// is best effort; a ledger mutation never fails because a receipt did.
type Plunk struct {
	HttpClient *http.Client
	Config     *utils.Config
}

func NewPlunk(config *utils.Config) *Plunk {
	return &Plunk{
		HttpClient: &http.Client{Timeout: 10 * time.Second},
		Config:     config,
	}
}

type EmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (s *Plunk) makeRequest(method, endpoint string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, s.Config.PlunkBaseUrl+endpoint, reqBody)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+s.Config.PlunkApiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HttpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, errors.New(string(respBody))
	}

	return respBody, nil
}

func (s *Plunk) SendEmail(to, subject, body string) error {
	email := EmailRequest{
		To:      to,
		Subject: subject,
		Body:    body,
	}

	_, err := s.makeRequest("POST", "/send", email)
	return err
}

// SendDepositReceipt emails a confirmation for a settled deposit.
func (s *Plunk) SendDepositReceipt(to, reference string, amount decimal.Decimal, newBalance decimal.Decimal) error {
	subject := "Deposit Confirmed"
	body := fmt.Sprintf(
		"Your deposit of NGN %s (reference %s) has been credited. Your new wallet balance is NGN %s.",
		amount.StringFixed(2), reference, newBalance.StringFixed(2),
	)
	return s.SendEmail(to, subject, body)
}
