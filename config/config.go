package config

import (
	"fmt"
	"strings"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

const questionSeparator = "|"

type Config struct {
	Port      int    `env:"PORT,default=8080" validate:"gt=0,lte=65535"`
	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=json" validate:"oneof=json console"`

	IdentityProvider string `env:"IDENTITY_PROVIDER,default=facebook" validate:"oneof=facebook telegram"`
	AccessToken      string `env:"ACCESS_TOKEN" validate:"required_if=IdentityProvider facebook"`
	GraphAPIURL      string `env:"GRAPH_API_URL" validate:"omitempty,url"`
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN" validate:"required_if=IdentityProvider telegram"`

	ServiceAccountKeyPath string `env:"FIREBASE_SERVICE_ACCOUNT_KEY_PATH"`
	ProjectID             string `env:"FIREBASE_PROJECT_ID"`
	ParticipantNameField  string `env:"PARTICIPANT_NAME_FIELD,default=facebookName" validate:"required"`

	QuestionMode    string `env:"QUESTION_MODE,default=groups" validate:"oneof=groups static"`
	Questions       string `env:"QUESTIONS" validate:"required_if=QuestionMode static"`
	ContextLifespan int    `env:"CONTEXT_LIFESPAN,default=10" validate:"gt=0"`
}

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.QuestionMode == "static" && len(cfg.StaticQuestions()) == 0 {
		return Config{}, fmt.Errorf("invalid config: QUESTIONS has no question")
	}
	return cfg, nil
}

// StaticQuestions splits QUESTIONS on "|", dropping blank entries.
func (c Config) StaticQuestions() []string {
	questions := lo.Map(strings.Split(c.Questions, questionSeparator), func(q string, _ int) string {
		return strings.TrimSpace(q)
	})
	return lo.Compact(questions)
}
