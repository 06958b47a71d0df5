// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bureau-foundation/chameleon/lib/bot"
	"github.com/bureau-foundation/chameleon/lib/clock"
	"github.com/bureau-foundation/chameleon/lib/config"
	"github.com/bureau-foundation/chameleon/lib/cron"
	"github.com/bureau-foundation/chameleon/lib/karma"
	"github.com/bureau-foundation/chameleon/lib/karmastore"
	"github.com/bureau-foundation/chameleon/lib/process"
	"github.com/bureau-foundation/chameleon/lib/secret"
	"github.com/bureau-foundation/chameleon/lib/service"
	"github.com/bureau-foundation/chameleon/lib/snark"
	"github.com/bureau-foundation/chameleon/lib/version"
	"github.com/bureau-foundation/chameleon/slack"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	var (
		configPath  string
		showVersion bool
	)
	flag.StringVar(&configPath, "config", "", "path to chameleon.yaml (overrides CHAMELEON_CONFIG)")
	flag.BoolVar(&showVersion, "version", false, "print version information and exit")
	flag.Parse()

	if showVersion {
		version.Print("chameleon-service")
		return nil
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	environment, err := config.ParseEnv()
	if err != nil {
		return err
	}
	if configPath == "" {
		configPath = environment.ConfigPath
	}

	configuration := config.Default()
	if configPath != "" {
		configuration, err = config.LoadFile(configPath)
		if err != nil {
			return err
		}
	}
	if environment.LedgerPath != "" {
		configuration.Ledger.Path = environment.LedgerPath
	}
	if err := configuration.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	tokens, err := resolveTokens(configuration, environment)
	if err != nil {
		return err
	}
	defer tokens.Close()

	signingSecret, err := resolveSigningSecret(configuration, environment)
	if err != nil {
		return err
	}
	if signingSecret != nil {
		defer signingSecret.Close()
		if configuration.Status.ListenAddress == "" {
			return fmt.Errorf("SLACK_SIGNING_SECRET is set but status.listen_address is not: the webhook receiver mounts on the status server")
		}
	}

	// Load the ledger before touching the network. A ledger file that
	// exists but does not parse is a startup failure: running on would
	// eventually overwrite years of standings with an empty file.
	if err := os.MkdirAll(filepath.Dir(configuration.Ledger.Path), 0700); err != nil {
		return fmt.Errorf("creating ledger directory: %w", err)
	}
	store := karmastore.New(configuration.Ledger.Path)
	items, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading karma ledger: %w", err)
	}
	ledger := karma.NewLedger(items, store)
	logger.Info("karma ledger loaded", "path", store.Path(), "items", ledger.Len())

	picker := snark.NewPicker()
	if configuration.Phrases.File != "" {
		positive, negative, err := snark.LoadTables(configuration.Phrases.File)
		if err != nil {
			return err
		}
		picker, err = snark.NewPickerWithTables(positive, negative, rand.IntN)
		if err != nil {
			return err
		}
		logger.Info("phrase tables loaded",
			"file", configuration.Phrases.File,
			"positive", len(positive),
			"negative", len(negative),
		)
	}

	client, err := slack.NewClient(slack.ClientConfig{
		BaseURL: configuration.Slack.APIURL,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	session, err := client.NewSession(ctx, tokens.BotToken)
	if err != nil {
		return fmt.Errorf("authenticating with slack: %w", err)
	}

	chameleonBot, err := bot.New(bot.Config{
		Ledger:   ledger,
		Snapshot: store,
		Picker:   picker,
		Resolver: session,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	clk := clock.Real()
	svc := &chameleonService{
		bot:           chameleonBot,
		session:       session,
		ledger:        ledger,
		store:         store,
		clock:         clk,
		startedAt:     clk.Now(),
		signingSecret: signingSecret,
		logger:        logger,
	}

	// Admin socket server for the CLI.
	socketServer := service.NewSocketServer(configuration.Admin.SocketPath, logger)
	svc.registerActions(socketServer)

	socketDone := make(chan error, 1)
	go func() {
		socketDone <- socketServer.Serve(ctx)
	}()

	// Optional status HTTP server.
	var httpDone chan error
	if configuration.Status.ListenAddress != "" {
		httpServer := service.NewHTTPServer(service.HTTPServerConfig{
			Address: configuration.Status.ListenAddress,
			Handler: svc.statusHandler(),
			Logger:  logger,
		})
		httpDone = make(chan error, 1)
		go func() {
			httpDone <- httpServer.Serve(ctx)
		}()
	}

	// Scheduled jobs: ledger backups and the karma digest. Schedules
	// were validated with the configuration, so Parse cannot fail here.
	runner := cron.NewRunner(clk, logger)
	if configuration.Ledger.BackupDir != "" && configuration.Ledger.BackupSchedule != "" {
		schedule, err := cron.Parse(configuration.Ledger.BackupSchedule)
		if err != nil {
			return fmt.Errorf("ledger.backup_schedule: %w", err)
		}
		svc.backupDir = configuration.Ledger.BackupDir
		svc.backupKeep = configuration.Ledger.BackupKeep
		runner.Add(cron.Job{Name: "ledger-backup", Schedule: schedule, Run: svc.runBackup})
	}
	if configuration.Digest.Schedule != "" {
		schedule, err := cron.Parse(configuration.Digest.Schedule)
		if err != nil {
			return fmt.Errorf("digest.schedule: %w", err)
		}
		svc.digestChannel = configuration.Digest.Channel
		runner.Add(cron.Job{Name: "karma-digest", Schedule: schedule, Run: svc.postDigest})
	}
	cronDone := make(chan error, 1)
	go func() {
		cronDone <- runner.Run(ctx)
	}()

	// Socket Mode event loop: messages and slash commands.
	eventsDone := make(chan error, 1)
	go func() {
		eventsDone <- slack.RunSocketMode(ctx, slack.SocketModeConfig{
			Client:         client,
			AppToken:       tokens.AppToken,
			Logger:         logger,
			Clock:          clk,
			OnMessage:      svc.handleMessage,
			OnSlashCommand: svc.handleSlashCommand,
		})
	}()

	logger.Info("chameleon running",
		"team", session.Team(),
		"socket", configuration.Admin.SocketPath,
		"items", ledger.Len(),
	)

	// Wait for shutdown signal.
	<-ctx.Done()
	logger.Info("shutting down")

	// Drain every loop. Each returns nil on context cancellation;
	// anything else is a real failure worth a log line.
	if err := <-eventsDone; err != nil {
		logger.Error("socket mode error", "error", err)
	}
	if err := <-socketDone; err != nil {
		logger.Error("admin socket error", "error", err)
	}
	if httpDone != nil {
		if err := <-httpDone; err != nil {
			logger.Error("status server error", "error", err)
		}
	}
	if err := <-cronDone; err != nil {
		logger.Error("cron runner error", "error", err)
	}

	return nil
}

// chameleonService is the core service state shared by the event
// handlers, the admin socket actions, the status HTTP handler, and
// the scheduled jobs.
type chameleonService struct {
	bot     *bot.Bot
	session *slack.BotSession
	ledger  *karma.Ledger
	store   *karmastore.Store

	clock     clock.Clock
	startedAt time.Time

	// backupDir and backupKeep configure the ledger-backup job; both
	// are zero when backups are disabled.
	backupDir  string
	backupKeep int

	// digestChannel receives the scheduled leaderboard post; empty
	// when the digest is disabled.
	digestChannel string

	// signingSecret verifies Events API webhook requests; nil when
	// webhook delivery is not configured.
	signingSecret *secret.Buffer

	logger *slog.Logger
}

// runBackup is the ledger-backup cron job.
func (s *chameleonService) runBackup(ctx context.Context) error {
	name, err := s.store.Backup(s.backupDir, s.clock.Now(), s.backupKeep)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// No ledger file yet: nothing has been recorded since
			// install. Not a failure.
			s.logger.Debug("skipping backup, no ledger file yet")
			return nil
		}
		return err
	}
	if name == "" {
		s.logger.Debug("skipping backup, ledger unchanged")
		return nil
	}
	s.logger.Info("ledger backed up", "name", name)
	return nil
}

// postDigest is the karma-digest cron job: the leaderboard posted to
// the configured channel on schedule.
func (s *chameleonService) postDigest(ctx context.Context) error {
	empty, people, things, err := s.bot.Leaderboard(ctx)
	if err != nil {
		return err
	}
	text := empty
	if text == "" {
		text = people + "\n" + things
	}
	if _, err := s.session.PostMessage(ctx, s.digestChannel, text); err != nil {
		if slack.IsAPIError(err, slack.ErrCodeChannelNotFound) {
			return fmt.Errorf("digest channel %s not found or bot not a member: %w", s.digestChannel, err)
		}
		return fmt.Errorf("posting digest to %s: %w", s.digestChannel, err)
	}
	s.logger.Info("karma digest posted", "channel", s.digestChannel)
	return nil
}
