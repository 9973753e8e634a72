package main

import (
	"inflammation/app"
	"inflammation/internal/container"
	"inflammation/ui"

	"github.com/spf13/cobra"
)

func newRootCmd(c *container.Container) *cobra.Command {
	var fullDataAnalysis bool
	cfg, service := c.Config, c.Analysis

	cmd := &cobra.Command{
		Use:   "inflammation [infiles...]",
		Short: "A basic patient inflammation data management system",
		Long: `Analyse patients' inflammation data.

By default every input file is summarised on its own (daily average, max and
min). With --full-data-analysis the directory of the first input file is
scanned for inflammation files of the same format and the standard deviation
of the per-file daily means is reported.

Supported formats: .csv, .json, .xlsx

Example:
  inflammation data/inflammation-01.csv data/inflammation-02.csv
  inflammation --full-data-analysis data/inflammation-01.json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer := ui.NewRenderer(cmd.OutOrStdout(), cfg.Output.Precision)

			if fullDataAnalysis {
				src, err := app.SelectSource(args[0], cfg.Sources, c.Logger)
				if err != nil {
					return err
				}
				result, err := service.AnalyseData(cmd.Context(), src)
				if err != nil {
					return err
				}
				return renderer.RenderView(result.View)
			}

			for _, path := range args {
				view, err := service.SummariseFile(path)
				if err != nil {
					return err
				}
				if err := renderer.RenderView(view); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fullDataAnalysis, "full-data-analysis", false, "Analyse every inflammation file in the first input's directory")

	cmd.AddCommand(newNormaliseCmd(c))
	return cmd
}

func newNormaliseCmd(c *container.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "normalise [infile]",
		Short: "Print each patient's readings scaled by their own maximum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := c.Analysis.Normalise(args[0])
			if err != nil {
				return err
			}
			return ui.NewRenderer(cmd.OutOrStdout(), c.Config.Output.Precision).RenderTable(args[0], table)
		},
	}
}
