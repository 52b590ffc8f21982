package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCommand assembles the hashcompare command tree
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hashcompare",
		Short: "Compare files or directory trees by content hash",
		Long: `hashcompare decides whether two files or two directory trees have identical
content. Both inputs are hashed concurrently with a selectable algorithm after a
cheap total-size check.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags
	AddGlobalFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(NewCompareCommand())
	rootCmd.AddCommand(NewAlgorithmsCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}
