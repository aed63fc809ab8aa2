// pkg/interaction/wizard.go

package interaction

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/config"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/timewindow"
)

// Choices holds everything the interactive wizard collects.
type Choices struct {
	Mode     timewindow.Mode
	Keywords []string
	Patterns []string
	Backup   bool
	DryRun   bool
	Passes   int
	Proceed  bool
}

var wizardModes = []struct {
	label string
	kind  timewindow.Kind
	days  int
}{
	{"Today", timewindow.KindToday, 0},
	{"Last 7 days", timewindow.KindLastNDays, 7},
	{"Last 30 days", timewindow.KindLastNDays, 30},
	{"A specific day", timewindow.KindSpecificDay, 0},
	{"Between two dates", timewindow.KindBetween, 0},
	{"Before a date", timewindow.KindBefore, 0},
	{"After a date", timewindow.KindAfter, 0},
	{"Older than N days", timewindow.KindOlderThan, 0},
	{"Newer than N days", timewindow.KindNewerThan, 0},
	{"All history", timewindow.KindAllTime, 0},
}

// RunCleanWizard walks the user through selecting a time window,
// content filters and safety options. It only reads input; nothing is
// touched until the caller acts on the returned choices.
func RunCleanWizard() (*Choices, error) {
	c := &Choices{}

	labels := make([]string, len(wizardModes))
	for i, m := range wizardModes {
		labels[i] = m.label
	}
	sel := wizardModes[PromptSelect("Which history entries should be cleaned?", labels)]
	c.Mode = timewindow.Mode{Kind: sel.kind, Days: sel.days}

	switch {
	case c.Mode.Kind.NeedsDate():
		c.Mode.Date = promptDate("Date (YYYY-MM-DD, optionally with HH:MM[:SS])")
	case c.Mode.Kind.NeedsRange():
		c.Mode.StartDate = promptDate("Start date (YYYY-MM-DD, optionally with HH:MM[:SS])")
		c.Mode.EndDate = promptDate("End date (YYYY-MM-DD, optionally with HH:MM[:SS])")
	case c.Mode.Kind.NeedsDays() && c.Mode.Days == 0:
		c.Mode.Days = promptPositiveInt("Number of days")
	}

	if PromptYesNo("Filter by keyword (substring match)?", false) {
		for {
			kw := PromptInput("Keyword (empty line to finish)", "")
			if kw == "" {
				break
			}
			c.Keywords = append(c.Keywords, kw)
		}
	}

	if PromptYesNo("Filter by regular expression?", false) {
		for {
			pat := PromptInput("Pattern (empty line to finish)", "")
			if pat == "" {
				break
			}
			if _, err := regexp.Compile(pat); err != nil {
				fmt.Printf("Invalid pattern: %v\n", err)
				continue
			}
			c.Patterns = append(c.Patterns, pat)
		}
	}

	c.DryRun = PromptYesNo("Dry run (show what would be deleted, change nothing)?", false)
	if !c.DryRun {
		c.Backup = PromptYesNo("Keep a backup copy of the history file?", true)
	}

	c.Passes = config.ShredPasses()
	if !c.DryRun {
		if raw := PromptInput("Secure overwrite passes", strconv.Itoa(c.Passes)); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				c.Passes = n
			} else {
				fmt.Printf("Keeping default of %d passes.\n", c.Passes)
			}
		}
		c.Proceed = PromptYesNo("Matching entries will be permanently destroyed. This cannot be undone. Continue?", false)
	} else {
		c.Proceed = true
	}

	return c, nil
}

func promptDate(label string) string {
	for {
		raw := PromptInput(label, "")
		if _, err := timewindow.ParseDate(raw, false); err == nil {
			return raw
		}
		fmt.Println("Unrecognized date. Use YYYY-MM-DD, YYYY-MM-DD HH:MM or YYYY-MM-DD HH:MM:SS.")
	}
}

func promptPositiveInt(label string) int {
	for {
		raw := PromptInput(label, "")
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
		fmt.Println("Enter a positive whole number.")
	}
}
