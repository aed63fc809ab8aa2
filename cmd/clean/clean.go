// cmd/clean/clean.go

package clean

import (
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/cleaner"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/config"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/interaction"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/timewindow"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/zscrub_cli"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/zscrub_err"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/zscrub_io"
)

var (
	flagMode      string
	flagDate      string
	flagStartDate string
	flagEndDate   string
	flagDays      int
	flagPrecise   bool
	flagKeywords  []string
	flagPatterns  []string
	flagBackup    bool
	flagDryRun    bool
	flagHistfile  string
	flagPasses    int
)

// CleanCmd removes matching entries and securely erases the old file.
var CleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove matching history entries and securely erase the old file",
	Long: `Clean filters a zsh extended-history file by time window and optional
content filters, writes the surviving entries to a new file, and
destroys the original with multi-pass random overwrites.

Without --mode on a terminal, an interactive walkthrough collects the
same options.`,
	Example: `  zscrub clean --mode today --dry-run
  zscrub clean --mode between --start-date 2026-01-01 --end-date 2026-01-31 --keyword token
  zscrub clean --mode before --date "2026-06-01 12:00" --precise --backup`,
	RunE: zscrub_cli.Wrap(runClean),
}

func init() {
	fs := CleanCmd.Flags()
	fs.StringVar(&flagMode, "mode", "", "time window mode: today, last_7_days, last_30_days, specific_day, between, before, after, older_than, newer_than, all")
	fs.StringVar(&flagDate, "date", "", "date for specific_day/before/after (YYYY-MM-DD, optionally with HH:MM[:SS])")
	fs.StringVar(&flagStartDate, "start-date", "", "range start for between")
	fs.StringVar(&flagEndDate, "end-date", "", "range end for between")
	fs.IntVar(&flagDays, "days", 0, "day count for older_than/newer_than")
	fs.BoolVar(&flagPrecise, "precise", false, "treat dates as exact instants instead of whole days")
	fs.StringArrayVar(&flagKeywords, "keyword", nil, "delete only entries containing this substring (repeatable)")
	fs.StringArrayVar(&flagPatterns, "regex", nil, "delete only entries matching this pattern (repeatable)")
	fs.BoolVar(&flagBackup, "backup", false, "keep a copy of the history file before rewriting")
	fs.BoolVar(&flagDryRun, "dry-run", false, "show what would be deleted without changing anything")
	fs.StringVar(&flagHistfile, "histfile", "", "history file path (default: $HISTFILE or ~/.zsh_history)")
	fs.IntVar(&flagPasses, "passes", config.DefaultShredPasses, "secure overwrite passes")
	if err := config.BindFlags(fs); err != nil {
		panic(err)
	}
}

func runClean(rc *zscrub_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	if flagMode == "" {
		return runInteractive(rc)
	}

	settings, err := settingsFromFlags(rc, cmd.Flags())
	if err != nil {
		return err
	}
	return cleaner.Run(rc, *settings)
}

// settingsFromFlags validates the flag surface per mode and assembles
// the run settings. Contradictory flags are hard errors; harmlessly
// ignored ones are warnings.
func settingsFromFlags(rc *zscrub_io.RuntimeContext, fs *pflag.FlagSet) (*cleaner.Settings, error) {
	kind, days, err := timewindow.ParseKind(flagMode)
	if err != nil {
		return nil, zscrub_err.NewExpectedError(err)
	}

	mode := timewindow.Mode{
		Kind:    kind,
		Precise: flagPrecise,
	}
	if days != 0 {
		mode.Days = days
	}

	switch {
	case kind.NeedsDate():
		if flagDate == "" {
			return nil, zscrub_err.NewExpectedError(cerr.Newf("mode %q requires --date", flagMode))
		}
		mode.Date = flagDate
		warnIgnored(rc, flagStartDate != "" || flagEndDate != "", "--start-date/--end-date")
		warnIgnored(rc, flagDays != 0, "--days")

	case kind.NeedsRange():
		if flagStartDate == "" || flagEndDate == "" {
			return nil, zscrub_err.NewExpectedError(cerr.New("mode \"between\" requires both --start-date and --end-date"))
		}
		mode.StartDate = flagStartDate
		mode.EndDate = flagEndDate
		warnIgnored(rc, flagDate != "", "--date")
		warnIgnored(rc, flagDays != 0, "--days")

	case kind.NeedsDays():
		if flagDays <= 0 {
			return nil, zscrub_err.NewExpectedError(cerr.Newf("mode %q requires a positive --days", flagMode))
		}
		if flagDate != "" || flagStartDate != "" || flagEndDate != "" {
			return nil, zscrub_err.NewExpectedError(cerr.Newf("mode %q takes --days, not dates", flagMode))
		}
		if flagPrecise {
			return nil, zscrub_err.NewExpectedError(cerr.Newf("--precise has no meaning for mode %q", flagMode))
		}
		mode.Days = flagDays

	default:
		// today, last_7_days, last_30_days, all
		warnIgnored(rc, flagDate != "" || flagStartDate != "" || flagEndDate != "", "date flags")
		warnIgnored(rc, flagDays != 0, "--days")
		if flagPrecise {
			return nil, zscrub_err.NewExpectedError(cerr.Newf("--precise has no meaning for mode %q", flagMode))
		}
	}

	return &cleaner.Settings{
		HistFile: flagHistfile,
		Mode:     mode,
		Keywords: flagKeywords,
		Patterns: flagPatterns,
		Backup:   flagBackup,
		DryRun:   flagDryRun,
		Passes:   resolvePasses(fs, flagPasses),
	}, nil
}

// resolvePasses keeps an explicit --passes value; otherwise the
// config/env setting applies, so ZSCRUB_PASSES and the config file are
// honored on the scripted path too.
func resolvePasses(fs *pflag.FlagSet, flagValue int) int {
	passes := flagValue
	if fs == nil || !fs.Changed("passes") {
		if v := config.ShredPasses(); v > 0 {
			passes = v
		}
	}
	if passes <= 0 {
		passes = config.DefaultShredPasses
	}
	return passes
}

func warnIgnored(rc *zscrub_io.RuntimeContext, cond bool, what string) {
	if cond {
		rc.Log.Warn("Flag ignored for this mode", zap.String("flag", what), zap.String("mode", flagMode))
	}
}

func runInteractive(rc *zscrub_io.RuntimeContext) error {
	if !interaction.IsTerminal() {
		return zscrub_err.NewExpectedError(cerr.New("--mode is required when not running on a terminal"))
	}
	if flagPrecise {
		return zscrub_err.NewExpectedError(cerr.New("--precise requires --mode; the interactive walkthrough works in whole days"))
	}

	choices, err := interaction.RunCleanWizard()
	if err != nil {
		return err
	}
	if !choices.Proceed {
		rc.Log.Info("User declined confirmation, nothing done")
		return nil
	}

	return cleaner.Run(rc, cleaner.Settings{
		HistFile: flagHistfile,
		Mode:     choices.Mode,
		Keywords: choices.Keywords,
		Patterns: choices.Patterns,
		Backup:   choices.Backup,
		DryRun:   choices.DryRun,
		Passes:   choices.Passes,
	})
}
