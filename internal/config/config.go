// Package config loads the command line configuration, falling back to
// environment variables for anything not given as a flag.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Environment variables consulted when the matching flag is not set.
const (
	EnvSecretID       = "TENCENTCLOUD_SECRET_ID"
	EnvSecretKey      = "TENCENTCLOUD_SECRET_KEY"
	EnvSessionToken   = "TENCENTCLOUD_SESSION_TOKEN"
	EnvRegion         = "TENCENTCLOUD_REGION"
	EnvPublicKeyFile  = "TENCENTCLOUD_PUBLIC_KEY_FILE_PATH"
	EnvPrivateKeyFile = "TENCENTCLOUD_PRIVATE_KEY_FILE_PATH"
	EnvInstanceIDList = "TENCENTCLOUD_INSTANCE_ID_LIST"
	EnvIntl           = "TENCENTCLOUD_INTL"
	EnvTelegramToken  = "TELEGRAM_BOT_TOKEN"
	EnvTelegramChatID = "TELEGRAM_CHAT_ID"
	EnvTelegramTopic  = "TELEGRAM_TOPIC_ID"
)

// Config is the configuration of a single upload and deploy run.
type Config struct {
	SecretID       string
	SecretKey      string `sensitive:"true"`
	SessionToken   string `sensitive:"true"`
	Region         string
	PublicKeyFile  string
	PrivateKeyFile string
	InstanceIDs    []string
	International  bool // Use the international site endpoint

	TelegramBotToken string `sensitive:"true"`
	TelegramChatID   int64
	TelegramTopicID  int64 // 0 posts to the chat's general topic

	Debug bool
}

// Parse parses args, using getenv for every value not given as a flag.
func Parse(args []string, getenv func(string) string, output io.Writer) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet("tc-eo-ssl", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.SecretID, "secret-id", "", "API secret id (env "+EnvSecretID+")")
	fs.StringVar(&cfg.SecretKey, "secret-key", "", "API secret key (env "+EnvSecretKey+")")
	fs.StringVar(&cfg.SessionToken, "session-token", "", "session token of a temporary credential (env "+EnvSessionToken+")")
	fs.StringVar(&cfg.Region, "region", "", "region sent with every request (env "+EnvRegion+")")
	fs.StringVar(&cfg.PublicKeyFile, "public-key-file-path", "", "path of the PEM certificate chain (env "+EnvPublicKeyFile+")")
	fs.StringVar(&cfg.PrivateKeyFile, "private-key-file-path", "", "path of the PEM private key (env "+EnvPrivateKeyFile+")")
	instances := fs.String("instance-id-list", "", "comma separated EdgeOne instances (domains) to deploy to (env "+EnvInstanceIDList+")")
	fs.BoolVar(&cfg.International, "intl", false, "use the international site (env "+EnvIntl+")")
	fs.StringVar(&cfg.TelegramBotToken, "tg-bot-token", "", "Telegram bot token for notifications (env "+EnvTelegramToken+")")
	fs.Int64Var(&cfg.TelegramChatID, "tg-chat-id", 0, "Telegram chat id for notifications (env "+EnvTelegramChatID+")")
	fs.Int64Var(&cfg.TelegramTopicID, "tg-topic-id", 0, "Telegram topic id for notifications (env "+EnvTelegramTopic+")")
	fs.BoolVar(&cfg.Debug, "debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	fallback := func(name string, dst *string, env string) {
		if !set[name] {
			*dst = getenv(env)
		}
	}
	fallback("secret-id", &cfg.SecretID, EnvSecretID)
	fallback("secret-key", &cfg.SecretKey, EnvSecretKey)
	fallback("session-token", &cfg.SessionToken, EnvSessionToken)
	fallback("region", &cfg.Region, EnvRegion)
	fallback("public-key-file-path", &cfg.PublicKeyFile, EnvPublicKeyFile)
	fallback("private-key-file-path", &cfg.PrivateKeyFile, EnvPrivateKeyFile)
	fallback("instance-id-list", instances, EnvInstanceIDList)
	fallback("tg-bot-token", &cfg.TelegramBotToken, EnvTelegramToken)

	cfg.InstanceIDs = splitList(*instances)

	if !set["intl"] {
		cfg.International = strings.EqualFold(strings.TrimSpace(getenv(EnvIntl)), "true")
	}

	var err error
	if !set["tg-chat-id"] {
		if cfg.TelegramChatID, err = parseInt(getenv(EnvTelegramChatID), EnvTelegramChatID); err != nil {
			return nil, err
		}
	}
	if !set["tg-topic-id"] {
		if cfg.TelegramTopicID, err = parseInt(getenv(EnvTelegramTopic), EnvTelegramTopic); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate reports every missing required setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.SecretID == "" {
		errs = append(errs, fmt.Errorf("--secret-id or %s must be set", EnvSecretID))
	}
	if c.SecretKey == "" {
		errs = append(errs, fmt.Errorf("--secret-key or %s must be set", EnvSecretKey))
	}
	if c.PublicKeyFile == "" {
		errs = append(errs, fmt.Errorf("--public-key-file-path or %s must be set", EnvPublicKeyFile))
	}
	if c.PrivateKeyFile == "" {
		errs = append(errs, fmt.Errorf("--private-key-file-path or %s must be set", EnvPrivateKeyFile))
	}
	if len(c.InstanceIDs) == 0 {
		errs = append(errs, fmt.Errorf("--instance-id-list or %s must be set", EnvInstanceIDList))
	}
	return errors.Join(errs...)
}

// ReadKeyPair reads the certificate chain and private key files.
func (c *Config) ReadKeyPair() (publicKey, privateKey string, err error) {
	pub, err := os.ReadFile(c.PublicKeyFile)
	if err != nil {
		return "", "", fmt.Errorf("unable to read public key: %w", err)
	}
	priv, err := os.ReadFile(c.PrivateKeyFile)
	if err != nil {
		return "", "", fmt.Errorf("unable to read private key: %w", err)
	}
	return string(pub), string(priv), nil
}

// NotificationsEnabled is true when both a bot token and chat id are configured.
func (c *Config) NotificationsEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseInt(s, env string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", env, err)
	}
	return v, nil
}
