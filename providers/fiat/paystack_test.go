package fiat

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/LedgerPay/LedgerPay-Backend/providers"
	"github.com/shopspring/decimal"
)

func testProvider(secret string) *PaystackProvider {
	return &PaystackProvider{
		BaseProvider: providers.BaseProvider{
			Name:   providers.Paystack,
			APIKey: secret,
		},
	}
}

func sign(secret string, payload []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	p := testProvider("sk_test_secret")
	payload := []byte(`{"event":"charge.success","data":{"reference":"txn_deadbeef","amount":150000}}`)

	t.Run("accepts the correct signature", func(t *testing.T) {
		if !p.VerifyWebhookSignature(payload, sign("sk_test_secret", payload)) {
			t.Error("expected signature to verify")
		}
	})

	t.Run("rejects a signature from the wrong key", func(t *testing.T) {
		if p.VerifyWebhookSignature(payload, sign("another_key", payload)) {
			t.Error("expected signature to fail")
		}
	})

	t.Run("rejects a signature over a different payload", func(t *testing.T) {
		tampered := []byte(`{"event":"charge.success","data":{"reference":"txn_deadbeef","amount":999999}}`)
		if p.VerifyWebhookSignature(tampered, sign("sk_test_secret", payload)) {
			t.Error("expected signature to fail for a tampered payload")
		}
	})

	t.Run("rejects an empty signature", func(t *testing.T) {
		if p.VerifyWebhookSignature(payload, "") {
			t.Error("expected empty signature to fail")
		}
	})
}

func TestUnitConversion(t *testing.T) {
	t.Run("kobo to naira", func(t *testing.T) {
		cases := []struct {
			kobo int64
			want string
		}{
			{150000, "1500"},
			{150050, "1500.5"},
			{1, "0.01"},
			{0, "0"},
		}
		for _, tc := range cases {
			if got := KoboToNaira(tc.kobo); got.String() != tc.want {
				t.Errorf("KoboToNaira(%d) = %s, want %s", tc.kobo, got, tc.want)
			}
		}
	})

	t.Run("naira to kobo", func(t *testing.T) {
		cases := []struct {
			naira string
			want  int64
		}{
			{"1500", 150000},
			{"1500.50", 150050},
			{"0.01", 1},
		}
		for _, tc := range cases {
			amount, err := decimal.NewFromString(tc.naira)
			if err != nil {
				t.Fatalf("bad test amount %q: %v", tc.naira, err)
			}
			if got := NairaToKobo(amount); got != tc.want {
				t.Errorf("NairaToKobo(%s) = %d, want %d", tc.naira, got, tc.want)
			}
		}
	})

	t.Run("round trips whole kobo amounts", func(t *testing.T) {
		for _, kobo := range []int64{1, 99, 150000, 12345678} {
			if got := NairaToKobo(KoboToNaira(kobo)); got != kobo {
				t.Errorf("round trip of %d kobo gave %d", kobo, got)
			}
		}
	})
}
