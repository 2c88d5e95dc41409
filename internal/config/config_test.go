package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAdvisorRules(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []AdvisorRule
		wantErr bool
	}{
		{name: "empty uses defaults", raw: "", want: DefaultAdvisorRules},
		{
			name: "sorted by min items descending",
			raw:  "1:1, 7:-1 ,4:2",
			want: []AdvisorRule{{MinItems: 7, TierRank: -1}, {MinItems: 4, TierRank: 2}, {MinItems: 1, TierRank: 1}},
		},
		{name: "missing separator", raw: "7", wantErr: true},
		{name: "zero min items", raw: "0:1", wantErr: true},
		{name: "rank below -1", raw: "3:-2", wantErr: true},
		{name: "not a number", raw: "a:b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAdvisorRules(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "8081")
	t.Setenv("PAYMENT_PROVIDER", "midtrans")
	t.Setenv("BILLING_CURRENCY", "IDR")
	t.Setenv("CONFIRM_DEDUPE_WINDOW", "90s")
	t.Setenv("PLAN_ADVISOR_RULES", "not-valid")

	cfg := Load()

	assert.Equal(t, "8081", cfg.App.Port)
	assert.Equal(t, "midtrans", cfg.Payment.Provider)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 90*time.Second, cfg.Billing.ConfirmDedupeWindow)
	assert.Equal(t, DefaultAdvisorRules, cfg.Billing.AdvisorRules)
	assert.Equal(t, 30*time.Second, cfg.Billing.ConfirmLockTTL)
}

func TestValidatePaymentCurrency(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		currency string
		wantErr  bool
	}{
		{name: "midtrans in rupiah", provider: "midtrans", currency: "IDR"},
		{name: "midtrans lower case", provider: "midtrans", currency: "idr"},
		{name: "midtrans in dollars", provider: "midtrans", currency: "USD", wantErr: true},
		{name: "stripe in dollars", provider: "stripe", currency: "USD"},
		{name: "no provider", provider: "", currency: "EUR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Payment: PaymentConfig{Provider: tt.provider},
				Billing: BillingConfig{Currency: tt.currency},
			}
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
