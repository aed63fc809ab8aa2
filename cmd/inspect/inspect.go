// cmd/inspect/inspect.go

package inspect

import (
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/cleaner"
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
	flagHistfile  string
)

// InspectCmd previews what a clean run would delete. It is a forced
// dry run and never writes to the history file.
var InspectCmd = &cobra.Command{
	Use:     "inspect",
	Short:   "Show which history entries a clean run would delete",
	Aliases: []string{"preview", "show"},
	Example: `  zscrub inspect --mode last_7_days
  zscrub inspect --mode all --regex 'aws_secret|api[_-]key'`,
	RunE:    zscrub_cli.Wrap(runInspect),
}

func init() {
	fs := InspectCmd.Flags()
	fs.StringVar(&flagMode, "mode", "", "time window mode: today, last_7_days, last_30_days, specific_day, between, before, after, older_than, newer_than, all")
	fs.StringVar(&flagDate, "date", "", "date for specific_day/before/after")
	fs.StringVar(&flagStartDate, "start-date", "", "range start for between")
	fs.StringVar(&flagEndDate, "end-date", "", "range end for between")
	fs.IntVar(&flagDays, "days", 0, "day count for older_than/newer_than")
	fs.BoolVar(&flagPrecise, "precise", false, "treat dates as exact instants instead of whole days")
	fs.StringArrayVar(&flagKeywords, "keyword", nil, "show only entries containing this substring (repeatable)")
	fs.StringArrayVar(&flagPatterns, "regex", nil, "show only entries matching this pattern (repeatable)")
	fs.StringVar(&flagHistfile, "histfile", "", "history file path (default: $HISTFILE or ~/.zsh_history)")
}

func runInspect(rc *zscrub_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	if flagMode == "" {
		return zscrub_err.NewExpectedError(cerr.New("inspect requires --mode"))
	}
	kind, days, err := timewindow.ParseKind(flagMode)
	if err != nil {
		return zscrub_err.NewExpectedError(err)
	}

	mode := timewindow.Mode{
		Kind:      kind,
		Date:      flagDate,
		StartDate: flagStartDate,
		EndDate:   flagEndDate,
		Days:      flagDays,
		Precise:   flagPrecise,
	}
	if days != 0 {
		mode.Days = days
	}

	return cleaner.Run(rc, cleaner.Settings{
		HistFile: flagHistfile,
		Mode:     mode,
		Keywords: flagKeywords,
		Patterns: flagPatterns,
		DryRun:   true,
	})
}
