package config

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/promptdeck/pkg/configs"
)

// Application config structure
type AppConfig struct {
	Name     string `mapstructure:"service_name" validate:"required"`
	Version  string `mapstructure:"version" validate:"required"`
	Secret   string `mapstructure:"secret" validate:"required"`
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" validate:"required"`
	LogLevel string `mapstructure:"log_level" validate:"required"`
	LogPath  string `mapstructure:"log_path"`

	PostgresConfig   configs.PostgresConfig    `mapstructure:",squash"`
	AssetStoreConfig configs.AssetStoreConfig  `mapstructure:",squash"`
	GeminiConfig     configs.GeminiConfig      `mapstructure:",squash"`
	GoogleOAuth      configs.GoogleOAuthConfig `mapstructure:",squash"`
}

// reading config and intializing configs for application
func InitConfig() (*viper.Viper, error) {
	vConfig := viper.NewWithOptions(viper.KeyDelimiter("__"))

	vConfig.AddConfigPath(".")
	vConfig.SetConfigName(".env")
	path := os.Getenv("ENV_PATH")
	if path != "" {
		log.Printf("env path %v", path)
		vConfig.SetConfigFile(path)
	}
	vConfig.SetConfigType("env")
	vConfig.AutomaticEnv()

	setDefault(vConfig)
	if err := vConfig.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		log.Printf("Reading from env variables.")
	}

	return vConfig, nil
}

// Load unmarshals and validates the application configuration.
func Load() (*AppConfig, error) {
	vConfig, err := InitConfig()
	if err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := vConfig.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefault(v *viper.Viper) {
	// setting all default values
	v.SetDefault("SERVICE_NAME", "recording-api")
	v.SetDefault("VERSION", "0.0.1")
	v.SetDefault("SECRET", "")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", 9090)
	v.SetDefault("LOG_LEVEL", "debug")
	v.SetDefault("LOG_PATH", "")

	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", 5432)
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "")
	v.SetDefault("POSTGRES_DATABASE", "promptdeck")
	v.SetDefault("POSTGRES_SSL_MODE", "disable")

	v.SetDefault("ASSET_STORE_ENDPOINT", "")
	v.SetDefault("ASSET_STORE_REGION", "us-east-1")
	v.SetDefault("ASSET_STORE_BUCKET", "audio-recordings")
	v.SetDefault("ASSET_STORE_PUBLIC_PREFIX", "")

	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_TRANSCRIPTION_MODEL", "gemini-2.5-pro")
	v.SetDefault("GEMINI_PROMPT_MODEL", "gemini-2.5-pro")

	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_REDIRECT_URL", "")
}
