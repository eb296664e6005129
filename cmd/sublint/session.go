package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.uber.org/multierr"

	"sublint/internal/checks"
	"sublint/internal/config"
	"sublint/internal/fonts"
	"sublint/internal/layout"
	"sublint/internal/lint"
	"sublint/internal/logging"
	"sublint/internal/services"
	"sublint/internal/services/llm"
	"sublint/internal/snap"
	"sublint/internal/snapstore"
	"sublint/internal/spelling"
	"sublint/internal/subs"
	"sublint/internal/video"
)

type sessionOptions struct {
	subtitles string
	video     string
	full      bool
}

// session owns everything one lint run needs. Missing optional pieces
// (video, renderer, grammar backend) leave the matching fields nil so the
// checks that need them disable themselves.
type session struct {
	cfg     *config.Config
	logger  *slog.Logger
	lc      *lint.Context
	entries []lint.Entry
	closers []func() error
}

func openSession(ctx context.Context, cfg *config.Config, logger *slog.Logger, sink lint.Sink, opts sessionOptions) (*session, error) {
	doc, err := subs.Load(opts.subtitles)
	if err != nil {
		return nil, fmt.Errorf("load subtitles: %w", err)
	}

	s := &session{
		cfg:    cfg,
		logger: logger,
		lc:     lint.NewContext(doc, sink, logger),
	}

	aspect := 1.0
	if path := strings.TrimSpace(opts.video); path != "" {
		src, err := video.Open(ctx, path, video.Options{
			FFmpegBinary:  cfg.Video.FFmpegBinary,
			FFprobeBinary: cfg.Video.FFprobeBinary,
			ProbeWidth:    cfg.Video.ProbeWidth,
			Timeout:       cfg.VideoTimeout(),
			Logger:        logger,
		})
		if err != nil {
			logging.WarnWithContext(logger, "video unavailable", "video_open_failed",
				logging.Error(err),
				logging.String("path", path),
				logging.String(logging.FieldErrorHint, "check video.ffmpeg_binary and video.ffprobe_binary"),
				logging.String(logging.FieldImpact, "timing checks disabled"),
			)
		} else {
			s.lc.Video = src
			aspect = src.AspectRatio()
			s.lc.Snap = snap.NewDetector(src, s.snapCache(ctx), snap.Options{
				MaxDistance:  cfg.Snap.MaxDistance,
				MinRGBDelta:  cfg.Snap.MinRGBDelta,
				SampleWidth:  cfg.Snap.SampleWidth,
				SampleHeight: cfg.Snap.SampleHeight,
			}, logger)
		}
	}

	renderer, err := layout.NewMetricsRenderer()
	if err != nil {
		logger.Info("layout renderer unavailable", logging.Error(err))
	} else {
		s.lc.Layout = layout.NewService(renderer, doc.Info, aspect, logger)
	}

	registry := checks.DefaultRegistry(s.dependencies())
	s.entries = registry.Select(opts.full || cfg.Checks.Full, cfg.CheckEnabled)
	return s, nil
}

// snapCache opens the persistent cache, falling back to memory when it is
// disabled, locked or broken.
func (s *session) snapCache(ctx context.Context) *snap.Cache {
	if !s.cfg.Snap.PersistCache {
		return snap.NewCache(nil, s.logger)
	}
	store, err := snapstore.Open(ctx, s.cfg.SnapCachePath())
	switch {
	case errors.Is(err, snapstore.ErrLocked):
		s.logger.Info("snap cache in use by another process; using memory cache",
			logging.String("path", s.cfg.SnapCachePath()))
		return snap.NewCache(nil, s.logger)
	case err != nil:
		logging.WarnWithContext(s.logger, "snap cache unavailable", "snap_cache_open_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "run sublint cache clear"),
			logging.String(logging.FieldImpact, "scene boundaries are recomputed every run"),
		)
		return snap.NewCache(nil, s.logger)
	}
	s.closers = append(s.closers, store.Close)
	return snap.NewCache(store, s.logger)
}

func (s *session) dependencies() checks.Dependencies {
	cfg := s.cfg
	deps := checks.Dependencies{
		Language: cfg.Spelling.Language,
		Fonts:    fonts.NewCatalog(cfg.Fonts.FCListBinary, cfg.FontCachePath(), cfg.FontCacheTTL(), s.logger),
		OpenDictionary: func(lang string) (spelling.Checker, error) {
			return spelling.OpenDictionary(cfg.Spelling.DictionaryDir, lang)
		},
	}
	client, err := llm.NewClient(llm.Config{
		APIKey:         cfg.Grammar.APIKey,
		BaseURL:        cfg.Grammar.BaseURL,
		Model:          cfg.Grammar.Model,
		Referer:        cfg.Grammar.Referer,
		Title:          cfg.Grammar.Title,
		TimeoutSeconds: cfg.Grammar.TimeoutSeconds,
	})
	switch {
	case err == nil:
		deps.Grammar = client
	case services.IsUnavailable(err):
		s.logger.Debug("grammar backend not configured", logging.Error(err))
	default:
		logging.WarnWithContext(s.logger, "grammar backend unavailable", "grammar_client_failed", logging.Error(err))
	}
	return deps
}

func (s *session) document() *subs.Document { return s.lc.Document }

// entryNames lists the selected checks in execution order.
func (s *session) entryNames() []string {
	entries := lint.NewRunner(s.entries, nil).Entries()
	out := make([]string, len(entries))
	for i, entry := range entries {
		out[i] = entry.Name
	}
	return out
}

func (s *session) Close() error {
	var err error
	for i := len(s.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, s.closers[i]())
	}
	s.closers = nil
	return err
}
