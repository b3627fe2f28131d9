package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/toxicmates/internal/bench"
)

var benchUsers int

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time adding, updating and removing members",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(io.Discard)
		if err != nil {
			return err
		}
		defer sess.Close()

		res, err := bench.Run(cmd.Context(), sess.network, benchUsers)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), res)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(benchCmd)
	benchCmd.Flags().IntVarP(&benchUsers, "users", "n", bench.DefaultUsers, "Number of members to add")
}
