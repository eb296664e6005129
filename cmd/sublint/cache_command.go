package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"sublint/internal/config"
	"sublint/internal/fonts"
	"sublint/internal/logging"
	"sublint/internal/report"
	"sublint/internal/snapstore"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the scene boundary and font caches",
	}

	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cfg.Snap.PersistCache {
				fmt.Fprintln(out, "Persistent cache is disabled (set snap.persist_cache = true in config.toml)")
				return nil
			}

			store, err := snapstore.Open(cmd.Context(), cfg.SnapCachePath())
			if err != nil {
				return cacheOpenError(err)
			}
			defer store.Close()
			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}

			catalog := fontCatalog(ctx, cfg)
			rows := [][]string{
				{"Videos", strconv.Itoa(stats.Videos)},
				{"Frame samples", strconv.Itoa(stats.Frames)},
				{"Snap decisions", strconv.Itoa(stats.Decisions)},
				{"Cached font families", strconv.Itoa(catalog.Count())},
			}
			fmt.Fprintf(out, "Cache: %s\n", cfg.Paths.CacheDir)
			fmt.Fprintln(out, report.Table([]string{"Entry", "Count"}, rows, 2))
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop cached frame samples, snap decisions and font lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			store, err := snapstore.Open(cmd.Context(), cfg.SnapCachePath())
			if err != nil {
				return cacheOpenError(err)
			}
			clearErr := store.Clear(cmd.Context())
			if closeErr := store.Close(); clearErr == nil {
				clearErr = closeErr
			}
			if clearErr != nil {
				return fmt.Errorf("clear snap cache: %w", clearErr)
			}
			fmt.Fprintln(out, "Cleared snap cache")

			if err := fontCatalog(ctx, cfg).Clear(); err != nil {
				return err
			}
			fmt.Fprintln(out, "Cleared font cache")
			return nil
		},
	}
}

func fontCatalog(ctx *commandContext, cfg *config.Config) *fonts.Catalog {
	logger, err := ctx.ensureLogger()
	if err != nil {
		logger = logging.NewNop()
	}
	return fonts.NewCatalog(cfg.Fonts.FCListBinary, cfg.FontCachePath(), cfg.FontCacheTTL(), logger)
}

func cacheOpenError(err error) error {
	if errors.Is(err, snapstore.ErrLocked) {
		return fmt.Errorf("snap cache is in use by another sublint process: %w", err)
	}
	return fmt.Errorf("open snap cache: %w", err)
}
