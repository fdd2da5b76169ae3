package main

import (
	"github.com/spf13/cobra"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover candidate companies from public sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		_, err = runDiscovery(ctx, st)
		return err
	},
}

func init() {
	rootCmd.AddCommand(discoverCmd)
}
