package cmd

import (
	"fmt"

	"github.com/XY-Finance/callforge/internal/ui"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <path>",
	Short: "Remove a parameter, tuple field or array item",
	Long: `Remove the node at the given path. Sibling order is preserved.
Removing a composite discards its whole subtree.

Examples:
  callforge remove 1a2b
  callforge remove 1a2b/3c4d`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		call, store, err := loadSession()
		if err != nil {
			return err
		}

		path, err := parsePath(call, args[0])
		if err != nil {
			return err
		}

		call.RemoveComponent(path)
		if err := store.Save(call); err != nil {
			return fmt.Errorf("saving session: %w", err)
		}
		fmt.Println(ui.Success("removed " + displayPath(path)))
		return nil
	},
}
