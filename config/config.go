package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	Redis        Redis
	RabbitMQ     RabbitMQ
	Auth         Auth
	Grading      Grading
	GeminiApiKey string
}

type Server struct {
	Port             string
	Mode             string // "debug" or "release"
	AllowOrigins     []string
	HideErrorDetails bool
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
	TestTTL  time.Duration
}

type RabbitMQ struct {
	URL      string
	Exchange string
}

type Auth struct {
	JWTSecret    string
	SessionTTL   time.Duration
	SecureCookie bool
}

// Grading holds the policies of the attempt recorder.
type Grading struct {
	AllowGuest    bool
	GuestEmail    string
	GuestName     string
	PassThreshold int
	Subjects      []string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.Mode = viper.GetString("SERVER_MODE")
	config.Server.AllowOrigins = stringList("SERVER_ALLOW_ORIGINS")
	config.Server.HideErrorDetails = viper.GetBool("SERVER_HIDE_ERROR_DETAILS")

	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")

	config.Redis.Addr = viper.GetString("REDIS_ADDR")
	config.Redis.Password = viper.GetString("REDIS_PASSWORD")
	config.Redis.DB = viper.GetInt("REDIS_DB")
	config.Redis.TestTTL = viper.GetDuration("REDIS_TEST_TTL")

	config.RabbitMQ.URL = viper.GetString("RABBITMQ_URL")
	config.RabbitMQ.Exchange = viper.GetString("RABBITMQ_EXCHANGE")

	config.Auth.JWTSecret = viper.GetString("JWT_SECRET")
	config.Auth.SessionTTL = viper.GetDuration("SESSION_TTL")
	config.Auth.SecureCookie = viper.GetBool("SESSION_SECURE_COOKIE")

	config.Grading.AllowGuest = viper.GetBool("GRADING_ALLOW_GUEST")
	config.Grading.GuestEmail = viper.GetString("GRADING_GUEST_EMAIL")
	config.Grading.GuestName = viper.GetString("GRADING_GUEST_NAME")
	config.Grading.PassThreshold = viper.GetInt("GRADING_PASS_THRESHOLD")
	config.Grading.Subjects = stringList("GRADING_SUBJECTS")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")

	if config.Auth.JWTSecret == "default-secret-key-change-this" {
		log.Warn().Msg("JWT_SECRET is not set, using the development default")
	}

	log.Info().
		Str("port", config.Server.Port).
		Str("db_host", config.Database.Host).
		Str("db_name", config.Database.Name).
		Bool("redis", config.Redis.Addr != "").
		Bool("rabbitmq", config.RabbitMQ.URL != "").
		Bool("allow_guest", config.Grading.AllowGuest).
		Msg("Config loaded")
	return &config, nil
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_MODE", "debug")
	viper.SetDefault("SERVER_ALLOW_ORIGINS", "*")
	viper.SetDefault("DATABASE_HOST", "localhost")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("REDIS_TEST_TTL", 10*time.Minute)
	viper.SetDefault("RABBITMQ_EXCHANGE", "exam.events")
	viper.SetDefault("JWT_SECRET", "default-secret-key-change-this")
	viper.SetDefault("SESSION_TTL", 24*time.Hour)
	viper.SetDefault("GRADING_ALLOW_GUEST", true)
	viper.SetDefault("GRADING_GUEST_EMAIL", "student@csca-prep.com")
	viper.SetDefault("GRADING_GUEST_NAME", "Default Student")
	viper.SetDefault("GRADING_PASS_THRESHOLD", 60)
	viper.SetDefault("GRADING_SUBJECTS", strings.Join([]string{
		"Mathematics",
		"Physics",
		"Chemistry",
		"Professional Chinese (Humanities)",
		"Professional Chinese (Science)",
	}, ","))
}

// stringList reads a comma separated setting. Entries are trimmed and empty
// ones skipped; spaces inside an entry are kept.
func stringList(key string) []string {
	var list []string
	for _, entry := range strings.Split(viper.GetString(key), ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			list = append(list, entry)
		}
	}
	return list
}
