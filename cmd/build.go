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
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/gnames/gn"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/theskyentist/gelato/internal/ioparams"
	"github.com/theskyentist/gelato/internal/iooutput"
	"github.com/theskyentist/gelato/internal/iospec"
	"github.com/theskyentist/gelato/internal/iostore"
	gelato "github.com/theskyentist/gelato/pkg"
	"github.com/theskyentist/gelato/pkg/emission"
	"github.com/theskyentist/gelato/pkg/model"
	"github.com/theskyentist/gelato/pkg/schema"
	"github.com/theskyentist/gelato/pkg/spectrum"
)

// getBuildCmd returns the build command.
func getBuildCmd() *cobra.Command {
	var save bool

	buildCmd := &cobra.Command{
		Use:   "build SPECTRUM REDSHIFT",
		Short: "Build the model of one spectrum",
		Long: `Build the spectral model of one spectrum and print its parameters.

The spectrum is an ASCII table with wavelength, flux and sigma columns.
Emission lines come from the parameter file, lines outside of the
spectrum are dropped. The output lists every parameter of the model
with its initial value and the parameter it is tied to.

Examples:
  gelato build spec.txt 0.0512
  gelato build spec.txt 0.0512 -p my_params.hcl -f json
  gelato build spec.txt 0.0512 --save`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cmd, formatFlag, lineRegionFlag, storeFlag)
			err := runBuild(cmd, args[0], args[1], paramsPath(cmd), save)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	buildCmd.Flags().StringP(
		"params", "p", "",
		"emission-line parameter file (default: config directory)",
	)
	buildCmd.Flags().StringP(
		"format", "f", "",
		"output format: text, json or csv",
	)
	buildCmd.Flags().Float64P(
		"line-region", "r", 0,
		"half-width of fitting regions in Angstrom",
	)
	buildCmd.Flags().StringP(
		"store", "b", "",
		"store backend for --save: sqlite or postgres",
	)
	buildCmd.Flags().BoolVarP(
		&save, "save", "s", false,
		"save the model to the store",
	)
	return buildCmd
}

func runBuild(
	cmd *cobra.Command,
	specPath, redshift, params string,
	save bool,
) error {
	z, err := strconv.ParseFloat(redshift, 64)
	if err != nil {
		return iospec.SpectrumInvalidError(
			specPath, fmt.Errorf("redshift '%s': %w", redshift, err),
		)
	}

	h, err := ioparams.Load(params)
	if err != nil {
		return err
	}

	spec, err := iospec.Read(specPath, z, h.Groups, cfg.Model.LineRegion)
	if err != nil {
		return err
	}

	m, err := model.Build(spec)
	if err != nil {
		return err
	}
	slog.Info("Model built",
		"path", specPath,
		"components", m.NComponents(),
		"params", m.NParams(),
		"free", len(m.Free()),
	)

	out, err := iooutput.Format(model.Summary(m), cfg.Output.Format)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)

	if !save {
		return nil
	}
	return saveModel(params, h, specPath, spec, m)
}

func saveModel(
	params string,
	h *emission.Hierarchy,
	specPath string,
	spec *spectrum.Spectrum,
	m *model.Compound,
) error {
	ctx := context.Background()
	st, err := iostore.New(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err = st.Init(ctx); err != nil {
		return err
	}

	run := &schema.Run{
		ID:            uuid.NewString(),
		Version:       gelato.Version,
		ParamsPath:    params,
		ParamsVersion: h.Version,
		LineRegion:    cfg.Model.LineRegion,
		StartedAt:     time.Now().UTC(),
	}
	if err = st.SaveRun(ctx, run); err != nil {
		return err
	}
	res := schema.NewResult(run.ID, specPath, spec, m)
	if err = st.Save(ctx, res); err != nil {
		return err
	}
	gn.Info("Model saved, spectrum ID: <em>%s</em>", res.Spectrum.ID)
	return nil
}
