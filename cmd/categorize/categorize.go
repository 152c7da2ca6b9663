// Package categorize handles transaction categorization commands
package categorize

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"avinya/fin-pulse/cmd/root"
)

var (
	isCredit bool
	explain  bool
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize <description>",
	Short: "Predict the category of a transaction description",
	Long: `Predict the category of a transaction description using learned
corrections first, then the keyword table, then the credit default.

Example:
  fin-pulse categorize "Swiggy order 1234"
  fin-pulse categorize --credit "ACME payroll"`,
	Args: cobra.ExactArgs(1),
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().BoolVarP(&isCredit, "credit", "c", false, "The transaction is money in")
	Cmd.Flags().BoolVar(&explain, "explain", false, "Show the result of every strategy")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	cat := c.GetCategorizer()
	out := cmd.OutOrStdout()

	if explain {
		results := cat.Explain(context.Background(), args[0], isCredit)
		for _, r := range results.Results {
			switch {
			case r.Error != nil:
				_, err = fmt.Fprintf(out, "%-14s error: %v\n", r.Strategy, r.Error)
			case r.Found:
				_, err = fmt.Fprintf(out, "%-14s %s\n", r.Strategy, r.Category)
			default:
				_, err = fmt.Fprintf(out, "%-14s -\n", r.Strategy)
			}
			if err != nil {
				return err
			}
		}
		for _, stratErr := range results.GetErrors() {
			c.GetLogger().WithError(stratErr).Warn("Categorization strategy failed")
		}
		if best, ok := results.GetBestResult(); ok {
			if _, err := fmt.Fprintf(out, "decided by %s\n", best.Strategy); err != nil {
				return err
			}
		}
	}

	_, err = fmt.Fprintln(out, cat.Predict(args[0], isCredit))
	return err
}
