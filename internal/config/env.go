package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Env is loaded once in main and injected into components. Services
// never read the process environment at call time; commission rates and
// sweep periods arrive here.
type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	CORSOrigins []string

	JWTSecret string

	FrontendURL string
	BackendURL  string

	GatewayBaseURL   string
	GatewayKeyID     string
	GatewayKeySecret string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	RedisAddr string

	// AgentCommission is credited per completed booking
	// (coins += amount * rate). RefundCommission is clawed back on a
	// post-completion refund (coins -= refund * rate).
	AgentCommission  decimal.Decimal
	RefundCommission decimal.Decimal

	PromoteInterval  time.Duration
	ReminderInterval time.Duration
	PurgeInterval    time.Duration

	// AbandonedOrderTTL is how long a CREATED payment row may linger
	// before the retention sweep deletes it.
	AbandonedOrderTTL time.Duration
}

func LoadEnv() Env {
	return Env{
		AppAddr: getStr("APP_ADDR", ":8080"),
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),

		DBUser: getStr("DB_USER", "root"),
		DBPass: os.Getenv("DB_PASSWORD"),
		DBHost: getStr("DB_HOST", "127.0.0.1:3306"),
		DBName: getStr("DB_NAME", "tourdesk"),

		CORSOrigins: splitList(getStr("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),

		JWTSecret: getStr("JWT_SECRET", "change-me"),

		FrontendURL: getStr("FRONTEND_URL", "http://localhost:5173"),
		BackendURL:  getStr("BACKEND_URL", "http://localhost:8080"),

		GatewayBaseURL:   getStr("GATEWAY_BASE_URL", "https://api.razorpay.com"),
		GatewayKeyID:     os.Getenv("GATEWAY_KEY_ID"),
		GatewayKeySecret: os.Getenv("GATEWAY_KEY_SECRET"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: getInt("SMTP_PORT", 587),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASSWORD"),
		MailFrom: os.Getenv("MAIL_FROM"),

		RedisAddr: os.Getenv("REDIS_ADDR"),

		AgentCommission:  getRate("AGENT_COMMISSION", "0.05"),
		RefundCommission: getRate("REFUND_COMMISSION", "0.05"),

		PromoteInterval:  getDuration("PROMOTE_INTERVAL", time.Hour),
		ReminderInterval: getDuration("REMINDER_INTERVAL", time.Hour),
		PurgeInterval:    getDuration("PURGE_INTERVAL", 24*time.Hour),

		AbandonedOrderTTL: getDuration("ABANDONED_ORDER_TTL", 24*time.Hour),
	}
}

func getStr(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getRate(key, def string) decimal.Decimal {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		v = def
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		d, _ = decimal.NewFromString(def)
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
