package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/mintnetwork/voteflow/pkg/catalog"
	"github.com/mintnetwork/voteflow/pkg/config"
	"github.com/mintnetwork/voteflow/pkg/logging"
	"github.com/mintnetwork/voteflow/pkg/store"
)

// stdinIsTerminal reports whether the TUI and interactive prompts can run.
var stdinIsTerminal = func() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// app carries configuration shared by all commands.
type app struct {
	cfg       config.Config
	ephemeral bool
}

// session is the opened state a command works against.
type session struct {
	catalog catalog.Catalog
	votes   *store.VoteStore
	logger  *slog.Logger
	closers []io.Closer
}

func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i].Close()
	}
}

// bindFlags registers the global flags. Flags that were set override the
// environment.
func (a *app) bindFlags(f *pflag.FlagSet) {
	f.String("dir", "", "data directory (default: OS data dir)")
	f.String("backend", "", "storage backend: file, sqlite or memory")
	f.String("catalog", "", "YAML file replacing the built-in site catalog")
	f.BoolVar(&a.ephemeral, "ephemeral", false, "keep voting state in memory only")
}

func (a *app) load(f *pflag.FlagSet) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if f.Changed("dir") {
		cfg.Dir, _ = f.GetString("dir")
	}
	if f.Changed("backend") {
		cfg.Backend, _ = f.GetString("backend")
	}
	if f.Changed("catalog") {
		cfg.Catalog, _ = f.GetString("catalog")
	}
	if cfg.Dir == "" {
		cfg.Dir = store.DefaultDataDir()
	}
	if a.ephemeral {
		cfg.Backend = store.BackendMemory
	}
	a.cfg = cfg
	return nil
}

// open loads the catalog and the vote store. With logToFile the process
// logger writes to the data directory.
func (a *app) open(logToFile bool) (*session, error) {
	s := &session{}

	if logToFile && !a.ephemeral {
		level, err := config.ParseLevel(a.cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		closer, err := logging.Init(a.cfg.Dir, level)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, closer)
	}
	s.logger = logging.WithFields("backend", a.cfg.Backend)

	cat, err := catalog.Load(a.cfg.Catalog)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.catalog = cat

	votes, closer, err := store.Open(a.cfg.Backend, a.cfg.Dir, s.logger)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("opening vote store: %w", err)
	}
	s.votes = votes
	s.closers = append(s.closers, closer)
	return s, nil
}
