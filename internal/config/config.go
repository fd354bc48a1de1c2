package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port                          string        `mapstructure:"PORT"`
	DatabaseDriver                string        `mapstructure:"DATABASE_DRIVER"`
	DatabasePath                  string        `mapstructure:"DATABASE_PATH"`
	DatabaseDSN                   string        `mapstructure:"DATABASE_DSN"`
	DiscordClientID               string        `mapstructure:"DISCORD_CLIENT_ID"`
	DiscordClientSecret           string        `mapstructure:"DISCORD_CLIENT_SECRET"`
	DiscordRedirectURL            string        `mapstructure:"DISCORD_REDIRECT_URL"`
	DiscordGuildID                string        `mapstructure:"DISCORD_GUILD_ID"`
	DiscordBotToken               string        `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string        `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
	JWTSecret                     string        `mapstructure:"JWT_SECRET"`
	FrontendURL                   string        `mapstructure:"FRONTEND_URL"`
	RedisAddr                     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword                 string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB                       int           `mapstructure:"REDIS_DB"`
	LockTTL                       time.Duration `mapstructure:"LOCK_TTL"`
	LockWait                      time.Duration `mapstructure:"LOCK_WAIT"`
	AMQPURL                       string        `mapstructure:"AMQP_URL"`
	AMQPQueue                     string        `mapstructure:"AMQP_QUEUE"`
	LogLevel                      string        `mapstructure:"LOG_LEVEL"`
}

var envKeys = []string{
	"DATABASE_DRIVER",
	"DATABASE_DSN",
	"DISCORD_CLIENT_ID",
	"DISCORD_CLIENT_SECRET",
	"DISCORD_GUILD_ID",
	"DISCORD_BOT_TOKEN",
	"DISCORD_NOTIFICATIONS_CHANNEL_ID",
	"JWT_SECRET",
	"FRONTEND_URL",
	"REDIS_ADDR",
	"REDIS_PASSWORD",
	"REDIS_DB",
	"AMQP_URL",
	"AMQP_QUEUE",
	"LOG_LEVEL",
}

// Load reads configuration from the environment, after merging a .env file
// from the working directory when one exists. Variables already set in the
// environment win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_PATH", "conference.db")
	v.SetDefault("DISCORD_REDIRECT_URL", "http://127.0.0.1:8080/auth/discord/callback")
	v.SetDefault("FRONTEND_URL", "http://127.0.0.1:4000/")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOCK_TTL", "10s")
	v.SetDefault("LOCK_WAIT", "5s")
	v.SetDefault("AMQP_QUEUE", "conference.events")
	v.SetDefault("LOG_LEVEL", "info")

	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig is Load for process startup: a decode failure is fatal.
func LoadConfig() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
	return cfg
}
