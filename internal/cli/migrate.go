package cli

import (
	"fmt"

	"gudang/internal/app"

	"github.com/spf13/cobra"
)

// NewMigrateCmd creates or updates the database schema.
func NewMigrateCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.NewContainer(rt.Config, rt.Log)
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Migrate(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
