package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DBconfig хранит конфигурацию для БД
type DBconfig struct {
	URL      string
	MaxConns int32
}

// RabbitMQConfig хранит конфигурацию для RabbitMQ
type RabbitMQConfig struct {
	URL string
}

type RedisConfig struct {
	URL string
}

type RESTconfig struct {
	PORT string
}

// TelegramConfig хранит токены ботов и чат для алертов
type TelegramConfig struct {
	BotToken      string
	AlertBotToken string
	AlertChatID   string
}

// PublicationConfig - настройки отбора и расписания публикаций
type PublicationConfig struct {
	VacanciesPerPost  int
	PostTimesMSK      []string
	MaxVacancyAgeDays int
	MaxParsedAgeDays  int
	ReferralLink      string
	RunningInCI       bool
}

// ParserConfig - настройки скрейпинга hh.ru
type ParserConfig struct {
	LookbackDays int
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName         string
	StatsDigestCron string
	Database        DBconfig
	RabbitMQ        RabbitMQConfig
	Redis           RedisConfig
	Rest            RESTconfig
	Telegram        TelegramConfig
	Publication     PublicationConfig
	Parser          ParserConfig
	FluentBit       FluentBitConfig
	StdoutLogger    StdoutLogConfig
}

// loadBase загружает общую для всех бинарников часть конфигурации
func loadBase(defaultAppName string, envPath ...string) *AppConfig {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: Could not load .env file (path: %v): %v. Using environment as is.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", defaultAppName)
	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	return cfg
}

// LoadPublisherConfig загружает конфигурацию бинарника публикации
func LoadPublisherConfig(envPath ...string) (*AppConfig, error) {
	cfg := loadBase("courier-publisher", envPath...)

	cfg.Database.URL = os.Getenv("DATABASE_URL")
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	cfg.Database.MaxConns = int32(getEnvAsInt("DATABASE_MAX_CONNS", 4))

	cfg.Telegram.BotToken = os.Getenv("TG_BOT_TOKEN")
	if cfg.Telegram.BotToken == "" {
		return nil, fmt.Errorf("TG_BOT_TOKEN environment variable is required")
	}

	if err := loadAlertConfig(cfg); err != nil {
		return nil, err
	}

	// Redis опционален: без него публикация идет без блокировки от параллельных запусков
	cfg.Redis.URL = os.Getenv("REDIS_URL")

	loadPublicationConfig(cfg)

	return cfg, nil
}

// LoadParserConfig загружает конфигурацию бинарника скрейпинга
func LoadParserConfig(envPath ...string) (*AppConfig, error) {
	cfg := loadBase("courier-parser", envPath...)

	cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
	if cfg.RabbitMQ.URL == "" {
		return nil, fmt.Errorf("RABBITMQ_URL environment variable is required")
	}

	if err := loadAlertConfig(cfg); err != nil {
		return nil, err
	}

	cfg.Parser.LookbackDays = getEnvAsInt("PARSER_LOOKBACK_DAYS", 1)

	return cfg, nil
}

// LoadSaverConfig загружает конфигурацию сервиса сохранения
func LoadSaverConfig(envPath ...string) (*AppConfig, error) {
	cfg := loadBase("courier-saver", envPath...)

	cfg.Database.URL = os.Getenv("DATABASE_URL")
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	cfg.Database.MaxConns = int32(getEnvAsInt("DATABASE_MAX_CONNS", 10))

	cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
	if cfg.RabbitMQ.URL == "" {
		return nil, fmt.Errorf("RABBITMQ_URL environment variable is required")
	}

	if err := loadAlertConfig(cfg); err != nil {
		return nil, err
	}

	cfg.Rest.PORT = getEnvAsString("PORT", "8080")
	cfg.StatsDigestCron = getEnvAsString("STATS_DIGEST_CRON", "0 9 * * *")

	loadPublicationConfig(cfg)

	return cfg, nil
}

func loadAlertConfig(cfg *AppConfig) error {
	cfg.Telegram.AlertBotToken = os.Getenv("TG_ALERT_BOT_TOKEN")
	if cfg.Telegram.AlertBotToken == "" {
		return fmt.Errorf("TG_ALERT_BOT_TOKEN environment variable is required")
	}
	cfg.Telegram.AlertChatID = os.Getenv("TG_ALERT_CHAT_ID")
	if cfg.Telegram.AlertChatID == "" {
		return fmt.Errorf("TG_ALERT_CHAT_ID environment variable is required")
	}
	return nil
}

func loadPublicationConfig(cfg *AppConfig) {
	cfg.Publication.VacanciesPerPost = getEnvAsInt("VACANCIES_PER_POST", 10)
	cfg.Publication.PostTimesMSK = getEnvAsSlice("POST_TIMES_MSK", []string{"09:00", "13:00", "19:00", "21:00"})
	cfg.Publication.MaxVacancyAgeDays = getEnvAsInt("MAX_VACANCY_AGE_DAYS", 30)
	cfg.Publication.MaxParsedAgeDays = getEnvAsInt("MAX_PARSED_AGE_DAYS", 14)
	cfg.Publication.ReferralLink = getEnvAsString("REFERRAL_LINK", "https://ya.cc/8UiUqj")
	cfg.Publication.RunningInCI = getEnvAsBool("CI", false)
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt читает переменную окружения как int или возвращает значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("WARNING: invalid int value for %s: %q. Using default %d.\n", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("WARNING: invalid bool value for %s: %q. Using default %t.\n", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// getEnvAsSlice читает список значений, разделенных запятыми
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(valueStr) == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
