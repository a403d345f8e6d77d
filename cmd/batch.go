/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/theskyentist/gelato/internal/iobatch"
	"github.com/theskyentist/gelato/internal/ioparams"
	"github.com/theskyentist/gelato/internal/iostore"
)

// getBatchCmd returns the batch command.
func getBatchCmd() *cobra.Command {
	batchCmd := &cobra.Command{
		Use:   "batch LIST",
		Short: "Build and save models of many spectra",
		Long: `Build models of all spectra from a list and save them to the store.

Every line of the list contains a path to a spectrum and its redshift.
Relative paths are resolved against the directory of the list. Spectra
are processed concurrently, failures are logged and skipped.

Store settings are taken from config.yaml or GELATO_STORE_* variables.

Examples:
  gelato batch spectra.txt
  gelato batch spectra.txt -j 16 -b postgres
  gelato batch spectra.txt -m /var/lib/node_exporter/gelato.prom`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cmd, jobsFlag, lineRegionFlag, storeFlag, metricsFlag)
			err := runBatch(args[0], paramsPath(cmd))
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	batchCmd.Flags().StringP(
		"params", "p", "",
		"emission-line parameter file (default: config directory)",
	)
	batchCmd.Flags().IntP(
		"jobs", "j", 0,
		"number of spectra processed concurrently",
	)
	batchCmd.Flags().Float64P(
		"line-region", "r", 0,
		"half-width of fitting regions in Angstrom",
	)
	batchCmd.Flags().StringP(
		"store", "b", "",
		"store backend: none, sqlite or postgres",
	)
	batchCmd.Flags().StringP(
		"metrics", "m", "",
		"file for metrics in Prometheus text format",
	)
	return batchCmd
}

func runBatch(listPath, params string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	h, err := ioparams.Load(params)
	if err != nil {
		return err
	}

	items, err := iobatch.ReadList(listPath)
	if err != nil {
		return err
	}
	gn.Info("Spectra to process: <em>%s</em>", humanize.Comma(int64(len(items))))

	st, err := iostore.New(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err = st.Init(ctx); err != nil {
		return err
	}

	b := iobatch.New(cfg, st)
	rep, err := b.Run(ctx, h, params, items)
	if err != nil {
		return err
	}
	gn.Info("Run ID: <em>%s</em>", rep.RunID)
	return nil
}
