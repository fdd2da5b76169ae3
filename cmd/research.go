package main

import (
	"github.com/spf13/cobra"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Research discovered companies and build enriched profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		_, err = runResearch(ctx, st)
		return err
	},
}

func init() {
	rootCmd.AddCommand(researchCmd)
}
