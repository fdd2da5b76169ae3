package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runOutput string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: discover, research, export",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		start := time.Now()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		candidates, err := runDiscovery(ctx, st)
		if err != nil {
			return err
		}

		profiles, err := runResearch(ctx, st)
		if err != nil {
			return err
		}

		if err := runExport(ctx, st, runOutput); err != nil {
			return err
		}

		zap.L().Info("pipeline complete",
			zap.Int("companies_discovered", len(candidates)),
			zap.Int("companies_researched", len(profiles)),
			zap.Duration("elapsed", time.Since(start)),
		)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runOutput, "output", "", "output file path (default from config)")
	rootCmd.AddCommand(runCmd)
}
