package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	PathEnv     = "THOUGHT_CATCHER_CONFIG"
	DefaultPath = "config.yaml"

	SinkNotion = "notion"
	SinkMySQL  = "mysql"
)

type Config struct {
	Port string `yaml:"port"`
	// Sink selects where thoughts are written: "notion" or "mysql".
	Sink string `yaml:"sink"`
	// Location is the IANA zone due dates are expressed in. Empty means the
	// process local zone.
	Location string `yaml:"location"`

	Notion NotionConfig `yaml:"notion"`
	MySQL  MySQLConfig  `yaml:"mysql"`
	Slack  SlackConfig  `yaml:"slack"`
	Log    LogConfig    `yaml:"log"`
}

type NotionConfig struct {
	DatabaseID string `yaml:"database_id"`
	TimeZone   string `yaml:"time_zone"`
	Version    string `yaml:"version"`
	BaseURL    string `yaml:"base_url"`
}

type MySQLConfig struct {
	DSN string `yaml:"dsn"`
}

type SlackConfig struct {
	WebhookURL string `yaml:"webhook_url"`
}

type LogConfig struct {
	Mode     string `yaml:"mode"`
	Encoding string `yaml:"encoding"`
	Level    string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		Port: "8000",
		Sink: SinkNotion,
		Notion: NotionConfig{
			DatabaseID: "6180f425330a4251bc3b0634a2e75926",
			TimeZone:   "US/Mountain",
			Version:    "2022-06-28",
		},
		Log: LogConfig{
			Mode:     "console",
			Encoding: "plain",
			Level:    "info",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path and the
// environment, later sources taking precedence. A .env file in the working
// directory is loaded first. Missing files are not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv(PathEnv)
	}
	if path == "" {
		path = DefaultPath
	}

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	return nil
}

func (c *Config) applyEnv() {
	setFromEnv(&c.Port, "PORT")
	setFromEnv(&c.Sink, "SINK")
	setFromEnv(&c.Location, "TZ_LOCATION")
	setFromEnv(&c.Notion.DatabaseID, "NOTION_DATABASE_ID")
	setFromEnv(&c.Notion.TimeZone, "DEADLINE_TIME_ZONE")
	setFromEnv(&c.MySQL.DSN, "MYSQL_DSN")
	setFromEnv(&c.Slack.WebhookURL, "SLACK_WEBHOOK_URL")
	setFromEnv(&c.Log.Level, "LOG_LEVEL")
}

func setFromEnv(target *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*target = value
	}
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}

	switch c.Sink {
	case SinkNotion:
		if c.Notion.DatabaseID == "" {
			return fmt.Errorf("notion.database_id is required")
		}
	case SinkMySQL:
		if c.MySQL.DSN == "" {
			return fmt.Errorf("mysql.dsn is required when sink is %q", SinkMySQL)
		}
		if _, err := mysql.ParseDSN(c.MySQL.DSN); err != nil {
			return fmt.Errorf("invalid mysql.dsn: %w", err)
		}
	default:
		return fmt.Errorf("unknown sink %q, expected %q or %q", c.Sink, SinkNotion, SinkMySQL)
	}

	if _, err := c.TimeLocation(); err != nil {
		return err
	}

	return nil
}

// TimeLocation resolves Location, defaulting to time.Local.
func (c *Config) TimeLocation() (*time.Location, error) {
	if c.Location == "" {
		return time.Local, nil
	}

	location, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid location %q: %w", c.Location, err)
	}

	return location, nil
}
