package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	IsProduction  bool
	EnableDBCheck bool

	// Auto-match tolerances for bank reconciliation.
	AutoMatchToleranceDays   int
	AutoMatchAmountTolerance decimal.Decimal

	// State unemployment insurance rate used when a request supplies none.
	SUIRate decimal.Decimal
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("AUTO_MATCH_TOLERANCE_DAYS", 7)
	viper.SetDefault("AUTO_MATCH_AMOUNT_TOLERANCE", "0.01")
	viper.SetDefault("SUI_RATE", "0.027")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.AutoMatchToleranceDays = viper.GetInt("AUTO_MATCH_TOLERANCE_DAYS")
	if cfg.AutoMatchToleranceDays <= 0 {
		cfg.AutoMatchToleranceDays = 7
	}

	amountTolerance, err := decimal.NewFromString(viper.GetString("AUTO_MATCH_AMOUNT_TOLERANCE"))
	if err != nil {
		log.Printf("Warning: Invalid value for AUTO_MATCH_AMOUNT_TOLERANCE ('%s'). Defaulting to 0.01.\n", viper.GetString("AUTO_MATCH_AMOUNT_TOLERANCE"))
		amountTolerance = decimal.RequireFromString("0.01")
	}
	cfg.AutoMatchAmountTolerance = amountTolerance

	suiRate, err := decimal.NewFromString(viper.GetString("SUI_RATE"))
	if err != nil {
		log.Printf("Warning: Invalid value for SUI_RATE ('%s'). Defaulting to 0.027.\n", viper.GetString("SUI_RATE"))
		suiRate = decimal.RequireFromString("0.027")
	}
	cfg.SUIRate = suiRate

	return cfg, nil
}
