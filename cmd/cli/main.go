package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"absim/adapters/excel"
	"absim/domain/experiment"
	"absim/internal/config"
	"absim/internal/container"
)

// globalFlags override configuration loaded from env and file
type globalFlags struct {
	configPath string
	seed       int64
	workers    int
	alpha      float64
	jsonOutput bool
}

func main() {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:           "absim",
		Short:         "A/B test simulator for news headline variants",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "YAML config file (default $ABSIM_CONFIG)")
	rootCmd.PersistentFlags().Int64Var(&flags.seed, "seed", 0, "Random seed for deterministic runs (default from config, 42)")
	rootCmd.PersistentFlags().IntVar(&flags.workers, "workers", 0, "Trial workers; 1 is the sequential reference mode")
	rootCmd.PersistentFlags().Float64Var(&flags.alpha, "alpha", 0, "Significance level used to flag p-values")
	rootCmd.PersistentFlags().BoolVar(&flags.jsonOutput, "json", false, "Print JSON instead of tables")

	rootCmd.AddCommand(
		newSimulateCmd(&flags),
		newEvaluateCmd(&flags),
		newDescribeCmd(&flags),
		newExportCmd(&flags),
		newServeCmd(&flags),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorText(err))
		os.Exit(1)
	}
}

func newSimulateCmd(flags *globalFlags) *cobra.Command {
	var consumers, items int
	var labels string

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run both arms and print one metric summary per variant",
		Long: `Generate a population and an item set, run variant A then variant B on the
same consumers and print CTR, mean dwell time and bounce rate per variant.

Example: absim simulate --consumers 1000 --items 30 --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildContainer(cmd, flags)
			if err != nil {
				return err
			}
			consumers, items = sizesOrDefault(c, cmd, consumers, items)

			var variantLabels []experiment.Variant
			if labels != "" {
				for _, l := range strings.Split(labels, ",") {
					variantLabels = append(variantLabels, experiment.Variant(strings.TrimSpace(l)))
				}
			}

			result, err := c.Simulation.Simulate(cmd.Context(), consumers, items, variantLabels)
			if err != nil {
				return err
			}
			if flags.jsonOutput {
				return printJSON(result)
			}
			printSummary(os.Stdout, result.Summary)
			printManifest(os.Stdout, result.Manifest)
			return nil
		},
	}

	cmd.Flags().IntVar(&consumers, "consumers", 0, "Number of consumers (default from config, 1000)")
	cmd.Flags().IntVar(&items, "items", 0, "Number of items (default from config, 30)")
	cmd.Flags().StringVar(&labels, "labels", "", "Comma separated arm labels, baseline first (default A,B)")

	return cmd
}

func newEvaluateCmd(flags *globalFlags) *cobra.Command {
	var consumers, items int

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Run both arms and print z, t and chi-square p-values per metric",
		Long: `Run the simulation and compare the arms on every metric with a proportion
z-test, a two-sample t-test and a chi-square test, side by side.

Example: absim evaluate --consumers 1000 --items 30 --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildContainer(cmd, flags)
			if err != nil {
				return err
			}
			consumers, items = sizesOrDefault(c, cmd, consumers, items)

			result, err := c.Simulation.Evaluate(cmd.Context(), consumers, items)
			if err != nil {
				return err
			}
			if flags.jsonOutput {
				return printJSON(result)
			}
			printSummary(os.Stdout, result.Summary)
			fmt.Fprintln(os.Stdout)
			printEvaluation(os.Stdout, result.Evaluation, result.Alpha)
			printManifest(os.Stdout, result.Manifest)
			return nil
		},
	}

	cmd.Flags().IntVar(&consumers, "consumers", 0, "Number of consumers (default from config, 1000)")
	cmd.Flags().IntVar(&items, "items", 0, "Number of items (default from config, 30)")

	return cmd
}

func newDescribeCmd(flags *globalFlags) *cobra.Command {
	var consumers, items int

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Summarize a generated population and item set without running trials",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildContainer(cmd, flags)
			if err != nil {
				return err
			}
			consumers, items = sizesOrDefault(c, cmd, consumers, items)

			preview, err := c.Simulation.Describe(cmd.Context(), consumers, items)
			if err != nil {
				return err
			}
			if flags.jsonOutput {
				return printJSON(preview)
			}
			printSheet(os.Stdout, excel.PopulationSheet(preview.Description))
			fmt.Fprintln(os.Stdout)
			printSheet(os.Stdout, excel.ItemMixSheet(preview.ItemCounts))
			return nil
		},
	}

	cmd.Flags().IntVar(&consumers, "consumers", 0, "Number of consumers (default from config, 1000)")
	cmd.Flags().IntVar(&items, "items", 0, "Number of items (default from config, 30)")

	return cmd
}

func newExportCmd(flags *globalFlags) *cobra.Command {
	var consumers, items int
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write summary, p-values and population profile to .xlsx or .csv",
		Long: `Run an evaluation and export every table. An .xlsx path gets one workbook
with a sheet per table; a .csv path gets one file per table.

Example: absim export --out results.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildContainer(cmd, flags)
			if err != nil {
				return err
			}
			consumers, items = sizesOrDefault(c, cmd, consumers, items)

			result, err := c.Simulation.Evaluate(cmd.Context(), consumers, items)
			if err != nil {
				return err
			}
			preview, err := c.Simulation.Describe(cmd.Context(), consumers, items)
			if err != nil {
				return err
			}

			report := excel.Report{Sheets: []excel.Sheet{
				excel.SummarySheet(result.Summary),
				excel.EvaluationSheet(result.Evaluation, result.Alpha),
				excel.PopulationSheet(preview.Description),
				excel.ItemMixSheet(preview.ItemCounts),
			}}
			written, err := excel.Write(out, report)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			for _, p := range written {
				fmt.Printf("wrote %s\n", p)
			}
			printManifest(os.Stdout, result.Manifest)
			return nil
		},
	}

	cmd.Flags().IntVar(&consumers, "consumers", 0, "Number of consumers (default from config, 1000)")
	cmd.Flags().IntVar(&items, "items", 0, "Number of items (default from config, 30)")
	cmd.Flags().StringVar(&out, "out", "absim_results.xlsx", "Output path (.xlsx or .csv)")

	return cmd
}

func newServeCmd(flags *globalFlags) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildContainer(cmd, flags)
			if err != nil {
				return err
			}
			addr := c.Addr()
			if port != "" {
				addr = ":" + port
			}
			return c.Server().Start(addr)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (default from config, 8080)")

	return cmd
}

// buildContainer loads .env, the config file and env vars, then applies
// command line overrides
func buildContainer(cmd *cobra.Command, flags *globalFlags) (*container.Container, error) {
	_ = godotenv.Load()

	path := flags.configPath
	if path == "" {
		path = os.Getenv("ABSIM_CONFIG")
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}

	persistent := cmd.Flags()
	if persistent.Changed("seed") {
		cfg.Simulation.Seed = flags.seed
	}
	if persistent.Changed("workers") {
		cfg.Simulation.Workers = flags.workers
	}
	if persistent.Changed("alpha") {
		cfg.Simulation.Tests.Alpha = flags.alpha
	}

	return container.New(cfg)
}

// sizesOrDefault falls back to the configured sizes for flags left unset
func sizesOrDefault(c *container.Container, cmd *cobra.Command, consumers, items int) (int, int) {
	if !cmd.Flags().Changed("consumers") {
		consumers = c.Config.Simulation.NumConsumers
	}
	if !cmd.Flags().Changed("items") {
		items = c.Config.Simulation.NumItems
	}
	return consumers, items
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
