package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	gelato "github.com/theskyentist/gelato/pkg"
	"github.com/theskyentist/gelato/pkg/config"
)

type funcFlag func(cmd *cobra.Command)

// applyFlags collects options from flags and applies them to cfg.
func applyFlags(cmd *cobra.Command, flags ...funcFlag) {
	opts = nil
	for _, f := range flags {
		f(cmd)
	}
	cfg.Update(opts)
}

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", gelato.Version, gelato.Build)
		os.Exit(0)
	}
}

func formatFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("format") {
		return
	}
	s, _ := cmd.Flags().GetString("format")
	opts = append(opts, config.OptOutputFormat(s))
}

func lineRegionFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("line-region") {
		return
	}
	f, _ := cmd.Flags().GetFloat64("line-region")
	opts = append(opts, config.OptModelLineRegion(f))
}

func jobsFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("jobs") {
		return
	}
	i, _ := cmd.Flags().GetInt("jobs")
	opts = append(opts, config.OptJobsNumber(i))
}

func storeFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("store") {
		return
	}
	s, _ := cmd.Flags().GetString("store")
	opts = append(opts, config.OptStoreBackend(s))
}

func metricsFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("metrics") {
		return
	}
	s, _ := cmd.Flags().GetString("metrics")
	opts = append(opts, config.OptMetricsFile(s))
}

// paramsPath returns the parameter file from the flag, or the default
// file in the config directory.
func paramsPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("params"); p != "" {
		return p
	}
	return config.ParamsFilePath(cfg.HomeDir)
}
