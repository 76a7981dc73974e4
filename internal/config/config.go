package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN,required"`

	// LLM settings
	LLMProvider      string `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string `env:"OPENAI_BASE_URL"`
	OpenAIModel      string `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	YandexOAuthToken string `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string `env:"YANDEX_FOLDER_ID"`

	// Sampling
	Temperature float32 `env:"LLM_TEMPERATURE" envDefault:"0.7"`
	MaxTokens   int     `env:"LLM_MAX_TOKENS" envDefault:"512"`

	// Prompts
	SystemPromptPath string `env:"SYSTEM_PROMPT_PATH"`

	// Storage
	NamesFilePath       string `env:"NAMES_FILE_PATH" envDefault:"data/user_names.json"`
	SchedulesFilePath   string `env:"SCHEDULES_FILE_PATH" envDefault:"data/user_schedules.json"`
	DialogsFilePath     string `env:"DIALOGS_FILE_PATH" envDefault:"data/user_dialogs.json"`
	ComplimentsFilePath string `env:"COMPLIMENTS_FILE_PATH" envDefault:"data/user_compliments.json"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
