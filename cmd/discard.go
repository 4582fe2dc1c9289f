package cmd

import (
	"fmt"

	"github.com/XY-Finance/callforge/internal/session"
	"github.com/XY-Finance/callforge/internal/ui"
	"github.com/spf13/cobra"
)

var discardYes bool

var discardCmd = &cobra.Command{
	Use:   "discard",
	Short: "Drop the call under construction",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := session.NewStore(cfg.Dir())
		if !store.Exists() {
			fmt.Println(ui.Meta("nothing to discard"))
			return nil
		}

		if !discardYes && !ui.ConfirmDanger("Discard the call in progress? Entered values are lost.") {
			return nil
		}
		if err := store.Discard(); err != nil {
			return fmt.Errorf("discarding session: %w", err)
		}
		fmt.Println(ui.Success("discarded"))
		return nil
	},
}

func init() {
	discardCmd.Flags().BoolVar(&discardYes, "yes", false, "skip the confirmation prompt")
}
