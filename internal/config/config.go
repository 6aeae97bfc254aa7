package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Backend selection
	DataBackend string

	// Google Sheets
	GoogleSpreadsheetID       string
	GoogleServiceAccountEmail string
	GooglePrivateKey          string
	GoogleCredentialsJSON     string
	GoogleCredentialsFile     string

	// Sheet layout
	MembersSheet      string
	PaymentsSheet     string
	TransactionsSheet string
	AmountCell        string

	// Dues
	MonthlyAmount int64

	// Admin login
	AdminUsername     string
	AdminPasswordHash string

	// AMQP audit events
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Audit worker
	AuditDBPath  string
	ConsumerName string

	ShutdownTimeout time.Duration
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		DataBackend: getEnv("DATA_BACKEND", "memory"),

		GoogleSpreadsheetID:       getEnv("GOOGLE_SHEET_ID", ""),
		GoogleServiceAccountEmail: getEnv("GOOGLE_SERVICE_ACCOUNT_EMAIL", ""),
		GooglePrivateKey:          getEnv("GOOGLE_PRIVATE_KEY", ""),
		GoogleCredentialsJSON:     getEnv("GOOGLE_CREDENTIALS_JSON", ""),
		GoogleCredentialsFile:     getEnv("GOOGLE_CREDENTIALS_FILE", ""),

		MembersSheet:      getEnv("MEMBERS_SHEET", "Members"),
		PaymentsSheet:     getEnv("PAYMENTS_SHEET", "Payments"),
		TransactionsSheet: getEnv("TRANSACTIONS_SHEET", "Transactions"),
		AmountCell:        getEnv("MONTHLY_AMOUNT_CELL", ""),

		MonthlyAmount: getEnvInt64("MONTHLY_AMOUNT", 20000),

		AdminUsername:     getEnv("ADMIN_USERNAME", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "iuran"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_events"),

		AuditDBPath:  getEnv("AUDIT_DB_PATH", "./data/audit.db"),
		ConsumerName: getEnv("AMQP_CONSUMER", ""),

		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

// Validate checks the configuration and returns every problem at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "memory":
	case "sheets":
		if c.GoogleSpreadsheetID == "" {
			problems = append(problems, "GOOGLE_SHEET_ID is required for the sheets backend")
		}
		hasPair := c.GoogleServiceAccountEmail != "" && c.GooglePrivateKey != ""
		hasJSON := c.GoogleCredentialsJSON != "" || c.GoogleCredentialsFile != ""
		if !hasPair && !hasJSON {
			problems = append(problems, "sheets backend needs GOOGLE_SERVICE_ACCOUNT_EMAIL+GOOGLE_PRIVATE_KEY or GOOGLE_CREDENTIALS_JSON/GOOGLE_CREDENTIALS_FILE")
		}
		if c.GoogleCredentialsFile != "" {
			if _, err := os.Stat(c.GoogleCredentialsFile); os.IsNotExist(err) {
				problems = append(problems, fmt.Sprintf("credentials file does not exist: %s", c.GoogleCredentialsFile))
			}
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid data backend '%s': must be one of [memory sheets]", c.DataBackend))
	}

	if c.MonthlyAmount <= 0 {
		problems = append(problems, fmt.Sprintf("invalid monthly amount %d: must be positive", c.MonthlyAmount))
	}

	if c.MembersSheet == "" || c.PaymentsSheet == "" || c.TransactionsSheet == "" {
		problems = append(problems, "sheet names cannot be empty")
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			problems = append(problems, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.AdminUsername != "" && c.AdminPasswordHash == "" {
		problems = append(problems, "ADMIN_PASSWORD_HASH is required when ADMIN_USERNAME is set")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
