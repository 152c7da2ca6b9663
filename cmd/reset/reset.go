// Package reset handles wiping learned knowledge
package reset

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"avinya/fin-pulse/cmd/root"
)

var yes bool

// Cmd represents the reset command
var Cmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget everything the engine has learned",
	Long: `Wipe every learned pattern, mapping and custom category from the
knowledge store. Pretrained reference data is not affected. Asks for
confirmation unless --yes is given.`,
	Args: cobra.NoArgs,
	RunE: resetFunc,
}

func init() {
	Cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
}

func resetFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	if !yes {
		if _, err := fmt.Fprint(cmd.OutOrStdout(), "Forget all learned knowledge? [y/N] "); err != nil {
			return err
		}
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "aborted")
			return err
		}
	}

	if err := c.GetCoordinator().Reset(); err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "knowledge reset")
	return err
}
