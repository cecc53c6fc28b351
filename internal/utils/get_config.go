package utils

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppPort string `yaml:"APP_PORT"`
	AppEnv  string `yaml:"APP_ENV"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBSSLMode  string `yaml:"DB_SSLMODE"`

	// Tokens issued by the auth service
	JWTSecret string `yaml:"JWT_SECRET"`
	JWTIssuer string `yaml:"JWT_ISSUER"`

	// Mailing configuration
	AppURL           string `yaml:"APP_URL"`
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket   string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region   string `yaml:"AWS_S3_REGION"`
	AWSS3Endpoint string `yaml:"AWS_S3_ENDPOINT"`
	AWSAccessKey  string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey  string `yaml:"AWS_SECRET_KEY"`

	// AI gateway configuration
	AIGatewayURL      string `yaml:"AI_GATEWAY_URL"`
	AIGatewayAPIKey   string `yaml:"AI_GATEWAY_API_KEY"`
	AIModel           string `yaml:"AI_MODEL"`
	AITimeout         string `yaml:"AI_TIMEOUT"`
	AnalysisCacheSize string `yaml:"ANALYSIS_CACHE_SIZE"`
	AnalysisCacheTTL  string `yaml:"ANALYSIS_CACHE_TTL"`

	// Observability
	LogLevel          string `yaml:"LOG_LEVEL"`
	LogFormat         string `yaml:"LOG_FORMAT"`
	TracingEnabled    string `yaml:"TRACING_ENABLED"`
	TracingEndpoint   string `yaml:"TRACING_ENDPOINT"`
	TracingSampleRate string `yaml:"TRACING_SAMPLE_RATE"`

	CORSAllowedOrigins string `yaml:"CORS_ALLOWED_ORIGINS"`
}

var config Config

// LoadConfig reads config.yaml from the working directory. A missing file is
// not fatal: every key can also come from the environment.
func LoadConfig() {
	LoadConfigFile("config.yaml")
}

func LoadConfigFile(path string) {
	file, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	var loaded Config
	if err := yaml.Unmarshal(file, &loaded); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}
	config = loaded
}

// GetConfig returns the environment variable named key when it is set,
// otherwise the value from config.yaml.
func GetConfig(key string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	switch key {
	case "APP_PORT":
		return config.AppPort
	case "APP_ENV":
		return config.AppEnv
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_SSLMODE":
		return config.DBSSLMode
	case "JWT_SECRET":
		return config.JWTSecret
	case "JWT_ISSUER":
		return config.JWTIssuer
	case "APP_URL":
		return config.AppURL
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_S3_ENDPOINT":
		return config.AWSS3Endpoint
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "AI_GATEWAY_URL":
		return config.AIGatewayURL
	case "AI_GATEWAY_API_KEY":
		return config.AIGatewayAPIKey
	case "AI_MODEL":
		return config.AIModel
	case "AI_TIMEOUT":
		return config.AITimeout
	case "ANALYSIS_CACHE_SIZE":
		return config.AnalysisCacheSize
	case "ANALYSIS_CACHE_TTL":
		return config.AnalysisCacheTTL
	case "LOG_LEVEL":
		return config.LogLevel
	case "LOG_FORMAT":
		return config.LogFormat
	case "TRACING_ENABLED":
		return config.TracingEnabled
	case "TRACING_ENDPOINT":
		return config.TracingEndpoint
	case "TRACING_SAMPLE_RATE":
		return config.TracingSampleRate
	case "CORS_ALLOWED_ORIGINS":
		return config.CORSAllowedOrigins
	default:
		return ""
	}
}

func GetConfigDefault(key, fallback string) string {
	if v := GetConfig(key); v != "" {
		return v
	}
	return fallback
}

func GetConfigInt(key string, fallback int) int {
	if i, err := strconv.Atoi(GetConfig(key)); err == nil {
		return i
	}
	return fallback
}

func GetConfigFloat(key string, fallback float64) float64 {
	if f, err := strconv.ParseFloat(GetConfig(key), 64); err == nil {
		return f
	}
	return fallback
}

func GetConfigBool(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(GetConfig(key)); err == nil {
		return b
	}
	return fallback
}

func GetConfigDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(GetConfig(key)); err == nil {
		return d
	}
	return fallback
}

func GetConfigSlice(key string, fallback []string) []string {
	raw := GetConfig(key)
	if raw == "" {
		return fallback
	}
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			result = append(result, t)
		}
	}
	if len(result) == 0 {
		return fallback
	}
	return result
}
