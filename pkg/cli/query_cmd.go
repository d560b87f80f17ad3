package cli

import (
	"github.com/spf13/cobra"
)

func newQueryCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "query <sql>",
		Short:   "Run a raw SQL statement",
		Long:    "Run an arbitrary SQL statement against the historical database. Results are never cached.",
		Example: `  opensky query "SELECT count(*) FROM state_vectors_data4 WHERE hour = 1735725600"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			f, err := client.Execute(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if output != "" {
				return exportFrame(f, output)
			}
			printFrame(f)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write results to a .csv or .parquet file")
	return cmd
}

func newCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <query-id>",
		Short: "Cancel a running query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			return client.Cancel(cmd.Context(), args[0])
		},
	}
}
