package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sublint/internal/deps"
	"sublint/internal/report"
	"sublint/internal/spelling"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Report external tools and directories sublint uses",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg.Video.FFmpegBinary, cfg.Video.FFprobeBinary, cfg.Fonts.FCListBinary))
			statuses = append(statuses, deps.CheckWritableDir("Cache dir", cfg.Paths.CacheDir))
			if lang := cfg.Spelling.Language; lang != "" {
				status := deps.Status{Name: "Dictionary", Command: lang, Description: "Spell check word list", Optional: true}
				if _, err := spelling.OpenDictionary(cfg.Spelling.DictionaryDir, lang); err != nil {
					status.Detail = err.Error()
				} else {
					status.Available = true
				}
				statuses = append(statuses, status)
			}

			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				rows = append(rows, []string{status.Name, status.Command, yesNo(status.Available), status.Detail})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, report.Table([]string{"Dependency", "Command", "Available", "Detail"}, rows))

			if missing := deps.Missing(statuses); len(missing) > 0 {
				return fmt.Errorf("%d required dependencies missing", len(missing))
			}
			return nil
		},
	}
}
