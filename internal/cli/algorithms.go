package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sdejongh/hashcompare/pkg/hashing"
)

// NewAlgorithmsCommand creates the algorithms command
func NewAlgorithmsCommand() *cobra.Command {
	var recommendedOnly bool

	cmd := &cobra.Command{
		Use:   "algorithms",
		Short: "List available hash algorithms",
		RunE: func(cmd *cobra.Command, args []string) error {
			recommended, err := hashing.Recommended()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if recommendedOnly {
				fmt.Fprintln(out, recommended)
				return nil
			}

			for _, name := range hashing.Available() {
				if name == recommended {
					fmt.Fprintf(out, "%s (recommended)\n", name)
				} else {
					fmt.Fprintln(out, name)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&recommendedOnly, "recommended", false, "print only the recommended default")

	return cmd
}
