package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Payment  PaymentConfig  `mapstructure:"payment"`
	VNPay    VNPayConfig    `mapstructure:"vnpay"`
	SePay    SePayConfig    `mapstructure:"sepay"`
	Mail     MailConfig     `mapstructure:"mail"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

// PaymentConfig holds gateway-independent payment policy.
type PaymentConfig struct {
	// DepositFraction is the share of the order's final amount an
	// auto-created deposit carries when no explicit amount is given.
	DepositFraction float64 `mapstructure:"deposit_fraction"`
	// Timezone is the local zone used for gateway-visible timestamps
	// (idempotency codes, expiry, pay dates).
	Timezone string `mapstructure:"timezone"`
}

// VNPayConfig configures the redirect/card gateway integration.
type VNPayConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	MerchantCode string `mapstructure:"merchant_code"` // vnp_TmnCode
	HashSecret   string `mapstructure:"hash_secret"`
	PayURL       string `mapstructure:"pay_url"`
	ReturnURL    string `mapstructure:"return_url"`
	Version      string `mapstructure:"version"`
	Currency     string `mapstructure:"currency"`
	Locale       string `mapstructure:"locale"`
	// ExpireIn is the window the gateway keeps the payment URL payable.
	ExpireIn time.Duration `mapstructure:"expire_in"`
	// PaidOrderStatus is the order status a successful invoice payment
	// advances to. Differs from sepay.paid_order_status; kept as an
	// explicit per-gateway policy pending product clarification.
	PaidOrderStatus string `mapstructure:"paid_order_status"`
}

// SePayConfig configures the bank-transfer/QR gateway integration.
type SePayConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	AccountNumber string `mapstructure:"account_number"`
	AccountName   string `mapstructure:"account_name"`
	BankCode      string `mapstructure:"bank_code"`
	// MinAmount is the gateway's minimum payable amount in minor units.
	MinAmount int64 `mapstructure:"min_amount"`
	// APIKey authenticates inbound webhooks (Authorization: Apikey ...).
	APIKey string `mapstructure:"api_key"`
	// WebhookSecret, when set, additionally requires an HMAC body
	// signature on every webhook.
	WebhookSecret   string `mapstructure:"webhook_secret"`
	QRBaseURL       string `mapstructure:"qr_base_url"`
	PaidOrderStatus string `mapstructure:"paid_order_status"`
}

// MailConfig configures the optional payment-success notification email.
type MailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: DPS_.
// Nested keys use underscore: DPS_DATABASE_HOST, DPS_VNPAY_HASH_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "dealer_payments")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "dealer-payment-service")
	v.SetDefault("payment.deposit_fraction", 0.10)
	v.SetDefault("payment.timezone", "Asia/Ho_Chi_Minh")
	v.SetDefault("vnpay.enabled", true)
	v.SetDefault("vnpay.merchant_code", "")
	v.SetDefault("vnpay.hash_secret", "")
	v.SetDefault("vnpay.pay_url", "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html")
	v.SetDefault("vnpay.return_url", "http://localhost:8080/api/v1/callbacks/vnpay/return")
	v.SetDefault("vnpay.version", "2.1.0")
	v.SetDefault("vnpay.currency", "VND")
	v.SetDefault("vnpay.locale", "vn")
	v.SetDefault("vnpay.expire_in", "15m")
	v.SetDefault("vnpay.paid_order_status", "CONFIRMED")
	v.SetDefault("sepay.enabled", true)
	v.SetDefault("sepay.account_number", "")
	v.SetDefault("sepay.account_name", "")
	v.SetDefault("sepay.bank_code", "")
	v.SetDefault("sepay.min_amount", 10000)
	v.SetDefault("sepay.api_key", "")
	v.SetDefault("sepay.webhook_secret", "")
	v.SetDefault("sepay.qr_base_url", "https://img.vietqr.io/image")
	v.SetDefault("sepay.paid_order_status", "PAY_SUCCESS")
	v.SetDefault("mail.enabled", false)
	v.SetDefault("mail.host", "")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.username", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.from", "")
	v.SetDefault("mail.to", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: DPS_VNPAY_HASH_SECRET -> vnpay.hash_secret
	v.SetEnvPrefix("DPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required - env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate enforces the configuration the payment engine cannot run
// without. Missing gateway credentials are a startup failure, never a
// per-request one.
func (c *Config) Validate() error {
	if c.VNPay.Enabled {
		if c.VNPay.MerchantCode == "" {
			return fmt.Errorf("vnpay.merchant_code is required when vnpay is enabled")
		}
		if c.VNPay.HashSecret == "" {
			return fmt.Errorf("vnpay.hash_secret is required when vnpay is enabled")
		}
	}
	if c.SePay.Enabled {
		if c.SePay.AccountNumber == "" {
			return fmt.Errorf("sepay.account_number is required when sepay is enabled")
		}
		if c.SePay.BankCode == "" {
			return fmt.Errorf("sepay.bank_code is required when sepay is enabled")
		}
	}
	if !c.VNPay.Enabled && !c.SePay.Enabled {
		return fmt.Errorf("at least one payment gateway must be enabled")
	}
	if f := c.Payment.DepositFraction; f <= 0 || f > 1 {
		return fmt.Errorf("payment.deposit_fraction must be in (0, 1], got %v", f)
	}
	if _, err := time.LoadLocation(c.Payment.Timezone); err != nil {
		return fmt.Errorf("payment.timezone: %w", err)
	}
	return nil
}
