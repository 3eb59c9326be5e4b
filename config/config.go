package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

// AppConfig is the merged application configuration: structure comes from
// config.yaml, secrets and endpoints from the environment.
type AppConfig struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Server     ServerConfig     `yaml:"server"`
	Timezone   string           `yaml:"timezone"`
	Dispatcher DispatcherConfig `yaml:"dispatcher"`
	Assets     AssetsConfig     `yaml:"assets"`
	EventBus   EventBusConfig   `yaml:"eventbus"`

	// Environment-backed values (never in config.yaml).
	MongoURI      string            `yaml:"-"`
	MongoDBName   string            `yaml:"-"`
	AssetStoreURL string            `yaml:"-"`
	KafkaBrokers  string            `yaml:"-"`
	WebhookURLs   map[string]string `yaml:"-"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// DispatcherConfig controls the due-post scan.
// Schedule is a cron expression; the default scans every minute.
type DispatcherConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Schedule  string `yaml:"schedule"`
	BatchSize int    `yaml:"batch_size"`
}

type AssetsConfig struct {
	Folder string `yaml:"folder"`
}

type EventBusConfig struct {
	Topic string `yaml:"topic"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}

	c.MongoURI = os.Getenv("MONGO_URI")
	c.MongoDBName = os.Getenv("MONGO_DB_NAME")
	c.AssetStoreURL = os.Getenv("ASSET_STORE_URL")
	c.KafkaBrokers = os.Getenv("KAFKA_BROKERS")
	c.WebhookURLs = map[string]string{
		"linkedin":  os.Getenv("LINKEDIN_WEBHOOK_URL"),
		"instagram": os.Getenv("INSTAGRAM_WEBHOOK_URL"),
		"facebook":  os.Getenv("FACEBOOK_WEBHOOK_URL"),
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.Dispatcher.Schedule == "" {
		c.Dispatcher.Schedule = "* * * * *"
	}
	if c.Dispatcher.BatchSize <= 0 {
		c.Dispatcher.BatchSize = 50
	}
	if c.Assets.Folder == "" {
		c.Assets.Folder = "media_auto_publish"
	}
	if c.EventBus.Topic == "" {
		c.EventBus.Topic = "post.delivery"
	}

	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
