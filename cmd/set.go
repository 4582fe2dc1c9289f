package cmd

import (
	"fmt"
	"strings"

	"github.com/XY-Finance/callforge/internal/ui"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <path> <value>",
	Short: "Set the value of a leaf node",
	Long: `Store a value for the leaf at the given path. Values are kept as
entered and checked against the leaf's type; an invalid value is stored
anyway (so it can be corrected later) but flagged immediately and again by
` + "`callforge show` and `callforge encode`" + `.

Examples:
  callforge set 1a2b 0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045
  callforge set 3c4d 1000000
  callforge set 5e6f/7a8b true`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		call, store, err := loadSession()
		if err != nil {
			return err
		}

		path, err := parsePath(call, args[0])
		if err != nil {
			return err
		}

		if err := call.SetValue(path, args[1]); err != nil {
			return err
		}
		if err := store.Save(call); err != nil {
			return fmt.Errorf("saving session: %w", err)
		}

		// Point out an invalid value right away, per field.
		target := strings.Join(path, "/")
		for _, e := range call.Validate() {
			if strings.Join(e.Path, "/") == target {
				fmt.Println(ui.Warn(fmt.Sprintf("stored, but %s", e)))
				return nil
			}
		}
		fmt.Println(ui.Success("set " + displayPath(path)))
		return nil
	},
}
