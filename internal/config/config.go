package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	DSN      string        `yaml:"dsn" env:"DSN" env-required:"true"`
	TokenTTL time.Duration `yaml:"token_ttl" env-default:"15m"`
	HTTP     HTTPConfig    `yaml:"http"`
	S3       S3Config      `yaml:"s3"`
	Redis    RedisConf     `yaml:"redis"`
	Upload   UploadConfig  `yaml:"upload"`
	Mail     MailConfig    `yaml:"mail"`
}

type HTTPConfig struct {
	Host         string `yaml:"host"`
	Port         string `yaml:"port" env-default:"8080"`
	SessionKey   string `yaml:"session_key" env:"SESSION_KEY" env-default:"dev-session-key"`
	JWTSecret    string `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	AllowOrigins string `yaml:"allow_origins" env-default:"*"`
}

type S3Config struct {
	Bucket          string        `yaml:"bucket" env:"S3_BUCKET" env-required:"true"`
	Region          string        `yaml:"region" env:"S3_REGION" env-required:"true"`
	AccessKeyID     string        `yaml:"access_key_id" env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string        `yaml:"secret_access_key" env:"AWS_SECRET_ACCESS_KEY"`
	Endpoint        string        `yaml:"endpoint" env:"S3_ENDPOINT"`
	UploadExpiry    time.Duration `yaml:"upload_expiry" env-default:"5m"`
	DownloadExpiry  time.Duration `yaml:"download_expiry" env-default:"1h"`
}

type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env-default:"0"`
}

type UploadConfig struct {
	MaxSize      int64 `yaml:"max_size" env-default:"10485760"`
	MaxWidth     int   `yaml:"max_width" env-default:"1920"`
	MaxHeight    int   `yaml:"max_height" env-default:"1080"`
	ThumbnailDim int   `yaml:"thumbnail_dim" env-default:"400"`
	JPEGQuality  int   `yaml:"jpeg_quality" env-default:"80"`
}

type MailConfig struct {
	SendgridAPIKey string `yaml:"sendgrid_api_key" env:"SENDGRID_API_KEY"`
	FromAddress    string `yaml:"from_address" env-default:"noreply@escolta.example"`
	FromName       string `yaml:"from_name" env-default:"Escolta"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
