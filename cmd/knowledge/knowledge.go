// Package knowledge handles inspection of the knowledge store
package knowledge

import (
	"github.com/spf13/cobra"

	"avinya/fin-pulse/cmd/common"
	"avinya/fin-pulse/cmd/root"
	"avinya/fin-pulse/internal/store"
)

// Cmd represents the knowledge command
var Cmd = &cobra.Command{
	Use:   "knowledge",
	Short: "Inspect learned knowledge",
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print every learned slot as YAML",
	Args:  cobra.NoArgs,
	RunE:  exportFunc,
}

func init() {
	Cmd.AddCommand(exportCmd)
}

func exportFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	snapshot := c.GetStore().Snapshot()
	doc := make(map[string]interface{}, len(snapshot))
	for _, slot := range store.AllSlots {
		doc[slot.String()] = snapshot[slot]
	}
	return common.PrintYAML(cmd.OutOrStdout(), doc)
}
