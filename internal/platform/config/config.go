package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// NBP exchange rate API base URL, overridable for tests.
	NBPBaseURL string

	// Balance every freshly registered account starts with, in PLN.
	StartingBalance decimal.Decimal

	// Whether registration consults the Have I Been Pwned breach API.
	HIBPCheckEnabled bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "cantor-backend")
	viper.SetDefault("NBP_BASE_URL", "https://api.nbp.pl")
	viper.SetDefault("STARTING_BALANCE", "10000")
	viper.SetDefault("HIBP_CHECK_ENABLED", true)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")

	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTSecret = jwtSecret

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 1
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.NBPBaseURL = viper.GetString("NBP_BASE_URL")
	cfg.HIBPCheckEnabled = viper.GetBool("HIBP_CHECK_ENABLED")

	startingBalanceStr := viper.GetString("STARTING_BALANCE")
	startingBalance, err := decimal.NewFromString(startingBalanceStr)
	if err != nil || startingBalance.IsNegative() {
		startingBalance = decimal.NewFromInt(10000)
		log.Printf("Warning: Invalid value for STARTING_BALANCE ('%s'). Defaulting to %s.\n", startingBalanceStr, startingBalance.String())
	}
	cfg.StartingBalance = startingBalance

	return cfg, nil
}
