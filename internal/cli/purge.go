package cli

import (
	"fmt"

	"gudang/internal/app"

	"github.com/spf13/cobra"
)

// NewPurgeTokensCmd runs the revocation purge once, outside the scheduler.
func NewPurgeTokensCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "purge-tokens",
		Short: "Remove revocation entries of expired tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.NewContainer(rt.Config, rt.Log)
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Migrate(); err != nil {
				return err
			}
			removed, err := c.Tokens.PurgeExpired(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged %d expired revocations\n", removed)
			return nil
		},
	}
}
