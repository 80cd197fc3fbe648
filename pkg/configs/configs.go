package configs

// PostgresConfig holds relational database connection settings.
type PostgresConfig struct {
	Host     string `mapstructure:"postgres_host" validate:"required"`
	Port     int    `mapstructure:"postgres_port" validate:"required"`
	User     string `mapstructure:"postgres_user" validate:"required"`
	Password string `mapstructure:"postgres_password" validate:"required"`
	Database string `mapstructure:"postgres_database" validate:"required"`
	SSLMode  string `mapstructure:"postgres_ssl_mode"`
}

// AssetStoreConfig holds object storage settings for recorded audio.
type AssetStoreConfig struct {
	Endpoint     string `mapstructure:"asset_store_endpoint"`
	Region       string `mapstructure:"asset_store_region" validate:"required"`
	AccessKey    string `mapstructure:"asset_store_access_key"`
	SecretKey    string `mapstructure:"asset_store_secret_key"`
	Bucket       string `mapstructure:"asset_store_bucket" validate:"required"`
	PublicPrefix string `mapstructure:"asset_store_public_prefix"`
}

// GeminiConfig holds generative AI settings for transcription and
// prompt generation.
type GeminiConfig struct {
	ApiKey             string `mapstructure:"gemini_api_key"`
	TranscriptionModel string `mapstructure:"gemini_transcription_model"`
	PromptModel        string `mapstructure:"gemini_prompt_model"`
}

// GoogleOAuthConfig holds the OAuth client used for calendar access.
type GoogleOAuthConfig struct {
	ClientID     string `mapstructure:"google_client_id"`
	ClientSecret string `mapstructure:"google_client_secret"`
	RedirectURL  string `mapstructure:"google_redirect_url"`
}
