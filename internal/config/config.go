package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config stores runtime configuration loaded from environment variables.
type Config struct {
	Port                  string
	DatabaseURL           string
	OpenAIAPIKey          string
	WhatsAppToken         string
	WhatsAppPhoneNumberID string
	WhatsAppTemplate      string
	TwilioAccountSID      string
	TwilioAuthToken       string
	TwilioSMSNumber       string
	SessionJWTSecret      string
	LocalTimezone         *time.Location
	ReminderSendDelay     time.Duration
	SweepInterval         time.Duration
	DispatchInterval      time.Duration
	LogLevel              string
}

// Load reads configuration values and prepares defaults where applicable.
func Load() *Config {
	_ = godotenv.Load()

	timezoneName := getenvDefault("LOCAL_TIMEZONE", "Local")
	location, err := time.LoadLocation(timezoneName)
	if err != nil {
		log.Printf("config: invalid LOCAL_TIMEZONE %q, defaulting to system local: %v", timezoneName, err)
		location = time.Local
	}

	return &Config{
		Port:                  getenvDefault("PORT", "8080"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		OpenAIAPIKey:          os.Getenv("OPENAI_API_KEY"),
		WhatsAppToken:         os.Getenv("WHATSAPP_TOKEN"),
		WhatsAppPhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
		WhatsAppTemplate:      getenvDefault("WHATSAPP_TEMPLATE", "reminder_alert"),
		TwilioAccountSID:      os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:       os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioSMSNumber:       os.Getenv("TWILIO_SMS_NUMBER"),
		SessionJWTSecret:      os.Getenv("SESSION_JWT_SECRET"),
		LocalTimezone:         location,
		ReminderSendDelay:     time.Duration(ParseIntEnv("REMINDER_SEND_DELAY_SECONDS", 50)) * time.Second,
		SweepInterval:         time.Duration(ParseIntEnv("SWEEP_INTERVAL_SECONDS", 60)) * time.Second,
		DispatchInterval:      time.Duration(ParseIntEnv("DISPATCH_INTERVAL_SECONDS", 5)) * time.Second,
		LogLevel:              getenvDefault("LOG_LEVEL", "info"),
	}
}

func getenvDefault(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	return value
}

// ParseIntEnv returns the integer value for an environment variable or the provided default.
func ParseIntEnv(key string, def int) int {
	value := os.Getenv(key)
	if value == "" {
		return def
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("config: unable to parse %s=%q as int: %v", key, value, err)
		return def
	}
	return parsed
}
