package nicklife

import "time"

// FitbitConfig holds everything the Fitbit client needs besides the
// credentials themselves, which live in the parameter store.
type FitbitConfig struct {
	APIBaseURL        string        `env:"FITBIT_API_BASE_URL,default=https://api.fitbit.com"`
	AccessTokenParam  string        `env:"FITBIT_ACCESS_TOKEN_PARAM,default=FITBIT_ACCESS_TOKEN"`
	RefreshTokenParam string        `env:"FITBIT_REFRESH_TOKEN_PARAM,default=FITBIT_REFRESH_TOKEN"`
	ClientIDParam     string        `env:"FITBIT_CLIENT_ID_PARAM,default=FITBIT_CLIENT_ID"`
	ClientSecretParam string        `env:"FITBIT_CLIENT_SECRET_PARAM,default=FITBIT_CLIENT_SECRET"`
	LogTimezone       string        `env:"FITBIT_LOG_TIMEZONE,default=America/New_York"`
	HTTPTimeout       time.Duration `env:"FITBIT_HTTP_TIMEOUT,default=10s"`
}

// SummaryConfig configures the daily-summary completion call.
type SummaryConfig struct {
	APIKeyParam    string  `env:"OPENAI_API_KEY_PARAM,default=OPENAI_API_KEY"`
	Model          string  `env:"SUMMARY_MODEL,default=gpt-3.5-turbo-1106"`
	Temperature    float32 `env:"SUMMARY_TEMPERATURE,default=0.7"`
	TargetCalories int     `env:"SUMMARY_TARGET_CALORIES,default=2000"`
	TargetWeight   int     `env:"SUMMARY_TARGET_WEIGHT,default=185"`
	FallbackWeight float64 `env:"SUMMARY_FALLBACK_WEIGHT,default=210"`
}
