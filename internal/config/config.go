package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // минуты
	} `yaml:"jwt"`

	// Gateway - доверенный фронт (бот-шлюз), который проксирует
	// пользователей. Токен сверяется в middleware.
	Gateway struct {
		Token string `yaml:"token"`
	} `yaml:"gateway"`

	Admin struct {
		Username     string `yaml:"username"`
		PasswordHash string `yaml:"password_hash"` // bcrypt
	} `yaml:"admin"`

	Telegram struct {
		BotToken  string `yaml:"bot_token"`
		APIBase   string `yaml:"api_base"`
		ChannelID int64  `yaml:"channel_id"`
	} `yaml:"telegram"`

	Payments struct {
		ShopID    string `yaml:"shop_id"`
		SecretKey string `yaml:"secret_key"`
		APIBase   string `yaml:"api_base"`
		ReturnURL string `yaml:"return_url"`
	} `yaml:"payments"`

	Subscriptions struct {
		ModelPrice    float64 `yaml:"model_price"`
		ModelDays     int     `yaml:"model_days"`
		CustomerPrice float64 `yaml:"customer_price"`
		CustomerDays  int     `yaml:"customer_days"`
		TrialDays     int     `yaml:"trial_days"`
	} `yaml:"subscriptions"`

	Limits struct {
		// Квота откликов = models_needed * ResponseMultiplier
		ResponseMultiplier int `yaml:"response_multiplier"`
		// Минимальный интервал между открытыми постами модели, часы
		PostIntervalHours int `yaml:"post_interval_hours"`
	} `yaml:"limits"`
}

var AppConfig *Config

func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		log.Println("Загрузка из config.yaml (режим НЕ-тест)")

		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	log.Println("Загрузка конфигурации из переменных окружения (режим теста)")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60
	cfg.Gateway.Token = os.Getenv("GATEWAY_TOKEN")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

// applyDefaults проставляет тарифы и лимиты, если они не заданы в конфиге
func applyDefaults(cfg *Config) {
	if cfg.Subscriptions.ModelPrice == 0 {
		cfg.Subscriptions.ModelPrice = 100
	}
	if cfg.Subscriptions.ModelDays == 0 {
		cfg.Subscriptions.ModelDays = 30
	}
	if cfg.Subscriptions.CustomerPrice == 0 {
		cfg.Subscriptions.CustomerPrice = 500
	}
	if cfg.Subscriptions.CustomerDays == 0 {
		cfg.Subscriptions.CustomerDays = 30
	}
	if cfg.Subscriptions.TrialDays == 0 {
		cfg.Subscriptions.TrialDays = 30
	}
	if cfg.Limits.ResponseMultiplier == 0 {
		cfg.Limits.ResponseMultiplier = 2
	}
	if cfg.Limits.PostIntervalHours == 0 {
		cfg.Limits.PostIntervalHours = 48
	}
	if cfg.Payments.APIBase == "" {
		cfg.Payments.APIBase = "https://api.yookassa.ru/v3"
	}
	if cfg.Telegram.APIBase == "" {
		cfg.Telegram.APIBase = "https://api.telegram.org"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
