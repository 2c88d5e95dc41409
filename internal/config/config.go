package config

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Payment  PaymentConfig
	Billing  BillingConfig
	Keys     APIKeys
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type PaymentConfig struct {
	Provider            string // "midtrans" or "stripe"
	MidtransServerKey   string
	MidtransProduction  bool
	StripeSecretKey     string
	StripeWebhookSecret string
	SuccessRedirectPath string
	CancelRedirectPath  string
}

type BillingConfig struct {
	Currency            string
	AdvisorRules        []AdvisorRule
	ConfirmLockTTL      time.Duration
	ConfirmDedupeWindow time.Duration
	IdempotencyTTL      time.Duration
	BillIssuedTopic     string
}

// AdvisorRule maps a minimum cart size to a plan tier rank.
// TierRank -1 selects the highest ranked plan.
type AdvisorRule struct {
	MinItems int
	TierRank int
}

type APIKeys struct {
	JwtSecret string
}

type AIConfig struct {
	LLMProvider   string // "ollama" or "huggingface"
	LLMModel      string // e.g. "llama3", "qwen2.5"
	OllamaBaseURL string
	LLMBaseURL    string // OpenAI compatible endpoint for non-ollama providers
	LLMAPIKey     string
}

// DefaultAdvisorRules: 7+ lines richest tier, 4-6 middle tier, 1-3 cheapest paid tier.
var DefaultAdvisorRules = []AdvisorRule{
	{MinItems: 7, TierRank: -1},
	{MinItems: 4, TierRank: 2},
	{MinItems: 1, TierRank: 1},
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	rules, err := ParseAdvisorRules(getEnv("PLAN_ADVISOR_RULES", ""))
	if err != nil {
		log.Printf("[WARN] Invalid PLAN_ADVISOR_RULES: %v. Using defaults", err)
		rules = DefaultAdvisorRules
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "E-book Studio"),
		},
		Payment: PaymentConfig{
			Provider:            getEnv("PAYMENT_PROVIDER", "stripe"),
			MidtransServerKey:   getEnv("MIDTRANS_SERVER_KEY", ""),
			MidtransProduction:  getEnv("MIDTRANS_IS_PRODUCTION", "false") == "true",
			StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
			StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
			SuccessRedirectPath: getEnv("PAYMENT_SUCCESS_PATH", "/app/subscription?payment=success"),
			CancelRedirectPath:  getEnv("PAYMENT_CANCEL_PATH", "/app/cart?payment=cancelled"),
		},
		Billing: BillingConfig{
			Currency:            getEnv("BILLING_CURRENCY", "USD"),
			AdvisorRules:        rules,
			ConfirmLockTTL:      getEnvAsDuration("CONFIRM_LOCK_TTL", 30*time.Second),
			ConfirmDedupeWindow: getEnvAsDuration("CONFIRM_DEDUPE_WINDOW", time.Minute),
			IdempotencyTTL:      getEnvAsDuration("IDEMPOTENCY_TTL", 24*time.Hour),
			BillIssuedTopic:     getEnv("BILL_ISSUED_TOPIC_NAME", "bill.issued"),
		},
		Keys: APIKeys{
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:      getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			LLMBaseURL:    getEnv("LLM_BASE_URL", ""),
			LLMAPIKey:     getEnv("LLM_API_KEY", ""),
		},
	}
}

// Validate rejects settings the payment provider cannot honour.
func (c *Config) Validate() error {
	if c.Payment.Provider == "midtrans" && !strings.EqualFold(c.Billing.Currency, "IDR") {
		return fmt.Errorf("PAYMENT_PROVIDER=midtrans charges in IDR, but BILLING_CURRENCY is %q", c.Billing.Currency)
	}
	return nil
}

// ParseAdvisorRules parses "7:-1,4:2,1:1" into rules sorted by MinItems descending.
// An empty string yields DefaultAdvisorRules.
func ParseAdvisorRules(raw string) ([]AdvisorRule, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultAdvisorRules, nil
	}

	var rules []AdvisorRule
	for _, part := range strings.Split(raw, ",") {
		pair := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(pair) != 2 {
			return nil, fmt.Errorf("rule %q must be min_items:tier_rank", part)
		}
		minItems, err := strconv.Atoi(strings.TrimSpace(pair[0]))
		if err != nil || minItems < 1 {
			return nil, fmt.Errorf("rule %q has invalid min_items", part)
		}
		rank, err := strconv.Atoi(strings.TrimSpace(pair[1]))
		if err != nil || rank < -1 {
			return nil, fmt.Errorf("rule %q has invalid tier_rank", part)
		}
		rules = append(rules, AdvisorRule{MinItems: minItems, TierRank: rank})
	}

	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].MinItems > rules[j].MinItems
	})
	return rules, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
