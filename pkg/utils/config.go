package utils

import (
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Session  SessionConfig
	Stripe   StripeConfig
	Telegram TelegramConfig
	Maps     MapsConfig
	AI       AIConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type SessionConfig struct {
	TTLMinutes     int
	CleanupMinutes int
}

type StripeConfig struct {
	SecretKey string
}

type TelegramConfig struct {
	BotToken string
	ChatID   string
}

type MapsConfig struct {
	APIKey string
}

type AIConfig struct {
	GeminiKey string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "driver-montblanc")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("SESSION_TTL_MINUTES", 120)
	viper.SetDefault("SESSION_CLEANUP_MINUTES", 10)

	if err := viper.ReadInConfig(); err != nil {
		// Missing .env is fine in containerized deployments; everything
		// can come from the environment.
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Session: SessionConfig{
			TTLMinutes:     viper.GetInt("SESSION_TTL_MINUTES"),
			CleanupMinutes: viper.GetInt("SESSION_CLEANUP_MINUTES"),
		},
		Stripe: StripeConfig{
			SecretKey: viper.GetString("STRIPE_SECRET_KEY"),
		},
		Telegram: TelegramConfig{
			BotToken: viper.GetString("TELEGRAM_BOT_TOKEN"),
			ChatID:   viper.GetString("TELEGRAM_CHAT_ID"),
		},
		Maps: MapsConfig{
			APIKey: viper.GetString("MAPS_API_KEY"),
		},
		AI: AIConfig{
			GeminiKey: viper.GetString("GEMINI_API_KEY"),
		},
	}

	return config, nil
}
