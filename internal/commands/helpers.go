package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gerunddev/scribe/internal/config"
	"github.com/gerunddev/scribe/internal/convert"
	"github.com/gerunddev/scribe/internal/editor"
	"github.com/gerunddev/scribe/internal/logger"
	"github.com/gerunddev/scribe/internal/render"
	"github.com/gerunddev/scribe/internal/store"
	"github.com/gerunddev/scribe/internal/styles"
	"github.com/gerunddev/scribe/internal/surface"
)

// session bundles everything a command needs to work on the stored document
type session struct {
	cfg       *config.Config
	log       *logger.Logger
	gateway   store.Gateway
	surface   *surface.Surface
	converter convert.Converter
	renderer  render.Renderer
	ctrl      *editor.Controller
	cleanup   func()
}

// newSession wires a controller from cfg around gateway
func newSession(cfg *config.Config, log *logger.Logger, gateway store.Gateway) *session {
	surf := surface.New()
	conv := convert.New(cfg.Converter)
	r := render.New(cfg)
	ctrl := editor.New(editor.Options{
		Surface:   surf,
		Renderer:  r,
		Converter: conv,
		Gateway:   gateway,
		Logger:    log,
	})

	return &session{
		cfg:       cfg,
		log:       log,
		gateway:   gateway,
		surface:   surf,
		converter: conv,
		renderer:  r,
		ctrl:      ctrl,
		cleanup:   func() {},
	}
}

// openSession loads config, logging and the configured store, then restores
// the saved document
func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log := logger.Discard()
	closeLog := func() {}
	if cfg.LogFile != "" {
		l, cleanup, err := logger.NewFileLogger(cfg.LogFile, cfg.LogLevel)
		if err == nil {
			log = l
			closeLog = cleanup
		}
	}
	log.ConfigLoaded(cfg.StoreBackend, cfg.Converter, cfg.RenderCacheTTL)

	gateway, err := store.Open(cfg)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("opening store: %w", err)
	}

	s := newSession(cfg, log, gateway)
	s.cleanup = func() {
		if err := gateway.Close(); err != nil {
			log.StoreError("close", err)
		}
		closeLog()
	}

	if _, err := s.ctrl.Restore(ctx); err != nil {
		s.cleanup()
		return nil, err
	}
	return s, nil
}

// mustOpen opens a session or exits with the error
func mustOpen(ctx context.Context) *session {
	s, err := openSession(ctx)
	if err != nil {
		fail(err)
	}
	return s
}

func fail(err error) {
	fmt.Println(styles.ErrorStyle.Render("✗ Error: " + err.Error()))
	os.Exit(1)
}

// location describes where the configured store keeps the document
func location(cfg *config.Config) string {
	if cfg.StoreBackend == config.BackendRedis {
		return cfg.RedisAddr + " " + cfg.RedisKey
	}
	return cfg.StorePath
}

// ParseLogFile reads the last N lines from the log file and finds the most
// recent save
func ParseLogFile(logPath string, maxLines int) ([]string, time.Time, string) {
	content, err := os.ReadFile(logPath)
	if err != nil {
		return []string{"Unable to read log file"}, time.Time{}, ""
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")

	// Get last N lines
	startIdx := 0
	if len(lines) > maxLines {
		startIdx = len(lines) - maxLines
	}
	recentLines := lines[startIdx:]

	var lastSaved time.Time
	mode := ""

	// Look for most recent "document saved" line
	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		if !strings.Contains(line, "document saved") {
			continue
		}
		// Format: 2025-11-27 14:11:57 INFO document saved mode=wysiwyg
		if len(line) > 19 {
			if t, err := time.ParseInLocation(time.DateTime, line[:19], time.Local); err == nil {
				lastSaved = t
			}
		}

		if idx := strings.Index(line, "mode="); idx != -1 {
			_, _ = fmt.Sscanf(line[idx:], "mode=%s", &mode) //nolint:errcheck // best effort parsing
		}
		break
	}

	return recentLines, lastSaved, mode
}
