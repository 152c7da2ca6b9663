// Package process handles the full pipeline command
package process

import (
	"fmt"

	"github.com/spf13/cobra"

	"avinya/fin-pulse/cmd/common"
	"avinya/fin-pulse/cmd/root"
)

var source string

// Cmd represents the process command
var Cmd = &cobra.Command{
	Use:   "process <text>",
	Short: "Run the full pipeline on a message",
	Long: `Run the source blacklist, the transaction gate, field extraction and
category prediction on a message and print the proposed transaction.

Example:
  fin-pulse process --source com.phonepe.app "Paid Rs 50 to Dad"`,
	Args: cobra.ExactArgs(1),
	RunE: processFunc,
}

func init() {
	Cmd.Flags().StringVarP(&source, "source", "s", "", "Package name of the app the message came from")
}

func processFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	res := c.GetEngine().Run(args[0], source)
	if res.Candidate == nil {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "skipped: %s\n", res.Outcome)
		return err
	}
	return common.PrintYAML(cmd.OutOrStdout(), common.NewCandidateView(*res.Candidate))
}
