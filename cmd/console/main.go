package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/tactics-console/internal/config"
	"github.com/jwebster45206/tactics-console/internal/logger"
	"github.com/jwebster45206/tactics-console/internal/rulesfeed"
	"github.com/jwebster45206/tactics-console/internal/services/events"
	"github.com/jwebster45206/tactics-console/internal/telemetry"
	"github.com/jwebster45206/tactics-console/pkg/menu"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logFile, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logFile.Close() // Ignore error in defer
	}()
	log := logger.Setup(cfg, logFile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTelEnabled {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			logger.WithError(log, err).Warn("Tracing disabled")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					logger.WithError(log, err).Warn("Failed to flush traces")
				}
			}()
		}
	}

	keymap, err := config.LoadKeymap(cfg.KeymapFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load keymap: %v\n", err)
		os.Exit(1)
	}

	projector := menu.NewProjector(log)
	shortcuts, unknown := buildShortcuts(projector.Commands(), keymap.Shortcuts)
	if len(unknown) > 0 {
		log.Warn("Keymap names unknown commands", "commands", unknown)
	}

	var (
		feed       *rulesfeed.Feed
		controller *offlineController
	)
	if cfg.RedisURL != "" {
		client, err := connectRedis(ctx, cfg.RedisURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not connect to Redis: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			_ = client.Close() // Ignore error in defer
		}()

		feed = rulesfeed.New(client, cfg.RulesChannel, projector, log)
		projector.AddListener(events.NewBroadcaster(client, cfg.EventsChannel, projector, log))
		log.Info("Connected to rules engine",
			"rules_channel", cfg.RulesChannel,
			"events_channel", cfg.EventsChannel)
	} else {
		controller = newOfflineController(projector, log)
		projector.AddListener(controller)
		log.Info("Running offline")
	}

	p := tea.NewProgram(NewConsoleUI(projector, controller, shortcuts, log),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())

	if feed != nil {
		feed.OnApply(func(m rulesfeed.Message) {
			p.Send(rulesAppliedMsg{msgType: m.Type})
		})
		go func() {
			if err := feed.Run(ctx); err != nil {
				log.Error("Rules feed stopped", "error", err)
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func connectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}
