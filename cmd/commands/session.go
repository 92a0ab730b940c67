package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"cosmic/internal/config"
	"cosmic/internal/logging"
	"cosmic/internal/storage"
	"cosmic/internal/task"
)

// session bundles everything a command needs to work on the task list.
type session struct {
	configPath  string
	firstLaunch bool
	cfg         config.Config
	store       *task.Store
	repo        *storage.Repository
	logs        io.Closer
}

func openSession(cmd *cli.Command) (*session, error) {
	configPath := cmd.String("config")
	firstLaunch := false
	if _, err := os.Stat(configPath); err != nil {
		firstLaunch = errors.Is(err, os.ErrNotExist)
	}
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, logs, err := logging.Open(cfg.LogPath, cmd.Bool("debug"))
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	backend, err := storage.Open(cfg.Backend, cfg.StoragePath())
	if err != nil {
		logs.Close()
		return nil, fmt.Errorf("open %s storage: %w", cfg.Backend, err)
	}
	repo := storage.NewRepository(backend, "")
	logger.Info("session opened", "backend", cfg.Backend, "path", cfg.StoragePath())

	return &session{
		configPath:  configPath,
		firstLaunch: firstLaunch,
		cfg:         cfg,
		store:       task.Open(repo, task.WithLogger(logger)),
		repo:        repo,
		logs:        logs,
	}, nil
}

func (s *session) Close() error {
	return errors.Join(s.repo.Close(), s.logs.Close())
}
