/* cmd/root.go */

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CodeMonkeyCybersecurity/zscrub/cmd/clean"
	"github.com/CodeMonkeyCybersecurity/zscrub/cmd/inspect"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/zscrub_err"
)

// RootCmd is the base command for zscrub.
var RootCmd = &cobra.Command{
	Use:   "zscrub",
	Short: "Securely clean zsh extended history",
	Long: `zscrub removes selected entries from a zsh extended-history file and
securely erases the old file contents with multi-pass random overwrites.

Run "zscrub clean" with flags for scripted use, or without a mode on a
terminal to get an interactive walkthrough.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("No subcommand provided. Try `zscrub help`.")
		return cmd.Help()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the zscrub version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(Version)
	},
}

// Version is stamped at build time via -ldflags.
var Version = "dev"

// RegisterCommands adds all subcommands to the root command.
func RegisterCommands() {
	for _, subCmd := range []*cobra.Command{
		clean.CleanCmd,
		inspect.InspectCmd,
		versionCmd,
	} {
		RootCmd.AddCommand(subCmd)
	}
}

// Execute runs the root command and exits with the outcome code:
// 0 on success, 1 on failure, 2 on user error, 130 when interrupted.
func Execute() {
	defer func() {
		_ = logger.Sync()
	}()

	RegisterCommands()

	err := RootCmd.Execute()
	if err != nil {
		zscrub_err.PrintError("command did not complete", err)
	}
	if code := zscrub_err.GetExitCode(err); code != 0 {
		os.Exit(code)
	}
}
