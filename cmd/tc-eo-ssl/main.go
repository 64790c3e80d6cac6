// Command tc-eo-ssl uploads a certificate to Tencent Cloud and deploys it to
// EdgeOne instances, optionally reporting the result to a Telegram chat.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	tcssl "github.com/tc-eo-ssl/sdk"
	"github.com/tc-eo-ssl/sdk/internal/config"
	"github.com/tc-eo-ssl/sdk/internal/notify"
	"github.com/tc-eo-ssl/sdk/pkg/tcapi"
	"github.com/tc-eo-ssl/sdk/ssl/types"
)

func main() {
	os.Exit(run(os.Args[1:], os.Getenv, os.Stderr))
}

func run(args []string, getenv func(string) string, stderr io.Writer) int {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger().
		Level(zerolog.InfoLevel)

	cfg, err := config.Parse(args, getenv, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	} else if err != nil {
		logger.Err(err).Msg("invalid arguments")
		return 2
	}
	if cfg.Debug {
		logger = logger.Level(zerolog.DebugLevel)
	}
	if err := cfg.Validate(); err != nil {
		logger.Err(err).Msg("invalid configuration")
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifier := &notify.Telegram{
		BotToken: cfg.TelegramBotToken,
		ChatID:   cfg.TelegramChatID,
		TopicID:  cfg.TelegramTopicID,
		Logger:   logger,
	}

	result, err := deploy(ctx, cfg, logger)
	text := successMessage(cfg, result)
	if err != nil {
		logger.Err(err).Msg("certificate deployment failed")
		text = failureMessage(cfg, result, err)
	} else {
		logger.Info().
			Str("certificate_id", result.CertificateID).
			Int64("deploy_record_id", result.DeployRecordID).
			Int32("deploy_status", result.DeployStatus).
			Msg("certificate deployed")
	}

	if !cfg.NotificationsEnabled() {
		logger.Info().Msg("telegram bot token or chat id not configured, skipping notification")
	} else if err := notifier.Send(ctx, text); err != nil {
		logger.Err(err).Msg("unable to send telegram notification")
	}

	if err != nil {
		return 1
	}
	return 0
}

func deploy(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*types.DeployResult, error) {
	publicKey, privateKey, err := cfg.ReadKeyPair()
	if err != nil {
		return nil, err
	}

	sdk := tcssl.NewSDK(
		tcssl.WithInternational(cfg.International),
		tcssl.WithCredential(cfg.SecretID, cfg.SecretKey),
		tcssl.WithSessionToken(cfg.SessionToken),
		tcssl.WithRegion(cfg.Region),
		tcssl.WithLogger(logger),
	)

	logger.Info().Strs("instances", cfg.InstanceIDs).Bool("intl", cfg.International).Msg("uploading certificate")
	return sdk.SSL.UploadAndDeploy(ctx, publicKey, privateKey, cfg.InstanceIDs)
}

func successMessage(cfg *config.Config, result *types.DeployResult) string {
	if result == nil {
		return ""
	}
	return fmt.Sprintf(
		"*EdgeOne certificate deployed*\nInstances: `%s`\nCertificateId: `%s`\nDeployRecordId: `%d`",
		strings.Join(cfg.InstanceIDs, ", "), result.CertificateID, result.DeployRecordID,
	)
}

func failureMessage(cfg *config.Config, result *types.DeployResult, err error) string {
	var b strings.Builder
	b.WriteString("*EdgeOne certificate deployment failed*\n")
	fmt.Fprintf(&b, "Instances: `%s`\n", strings.Join(cfg.InstanceIDs, ", "))
	if result != nil && result.CertificateID != "" {
		fmt.Fprintf(&b, "CertificateId: `%s` (uploaded, not deployed)\n", result.CertificateID)
	}

	var apiErr *tcapi.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintf(&b, "Code: `%s`\nMessage: %s\nRequestId: `%s`", apiErr.Code, apiErr.Message, apiErr.RequestID)
	} else {
		fmt.Fprintf(&b, "Error: %s", err)
	}
	return b.String()
}
