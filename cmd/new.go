package cmd

import (
	"fmt"

	"github.com/XY-Finance/callforge/internal/builder"
	"github.com/XY-Finance/callforge/internal/session"
	"github.com/XY-Finance/callforge/internal/ui"
	"github.com/spf13/cobra"
)

var newForce bool

var newCmd = &cobra.Command{
	Use:   "new <function-name>",
	Short: "Start building a new contract call",
	Long: `Start a fresh call with the given function name.

The function name must be a valid identifier (letters, digits, underscore,
not leading with a digit). Parameters are added afterwards with
` + "`callforge add`" + `.

Examples:
  callforge new transfer
  callforge new fillOrder --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !builder.ValidIdentifier(name) {
			return fmt.Errorf("%q is not a valid function name (letters, digits, underscore; no leading digit)", name)
		}

		store := session.NewStore(cfg.Dir())
		if store.Exists() && !newForce {
			return fmt.Errorf("a call is already in progress — `callforge show` to inspect, `callforge discard` to drop it, or pass --force")
		}

		if err := store.Save(builder.NewCall(name)); err != nil {
			return fmt.Errorf("saving session: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("building %s() — add parameters with `callforge add`", name)))
		return nil
	},
}

func init() {
	newCmd.Flags().BoolVar(&newForce, "force", false, "replace any call already in progress")
}
