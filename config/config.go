package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig
	DB    DBConfig
	Redis RedisConfig
	JWT   JWTConfig
	Mail  MailConfig
}

type AppConfig struct {
	Port string
	Env  string
}

// IsProduction reports whether error responses must hide internal detail.
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

type MailConfig struct {
	APIKey      string
	APIBaseURL  string
	FromAddress string
	FromName    string
	AdminEmail  string
	Timeout     time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	mailTimeout, err := time.ParseDuration(viper.GetString("MAIL_TIMEOUT"))
	if err != nil {
		mailTimeout = 10 * time.Second
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		Mail: MailConfig{
			APIKey:      viper.GetString("MAIL_API_KEY"),
			APIBaseURL:  viper.GetString("MAIL_API_BASE_URL"),
			FromAddress: viper.GetString("MAIL_FROM_ADDRESS"),
			FromName:    viper.GetString("MAIL_FROM_NAME"),
			AdminEmail:  viper.GetString("MAIL_ADMIN_EMAIL"),
			Timeout:     mailTimeout,
		},
	}

	return config, nil
}
