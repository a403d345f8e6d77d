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
	"fmt"
	"io"
	"strings"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/theskyentist/gelato/internal/ioparams"
	"github.com/theskyentist/gelato/pkg/emission"
)

// getParamsCmd returns the params command.
func getParamsCmd() *cobra.Command {
	paramsCmd := &cobra.Command{
		Use:   "params [FILE]",
		Short: "Validate an emission-line parameter file",
		Long: `Validate an emission-line parameter file and print its groups.

Without an argument the default file from the config directory is used.
YAML (.yaml, .yml) and HCL (.hcl) files are supported. Problems that do
not prevent building models are printed as warnings.

Examples:
  gelato params
  gelato params my_params.hcl`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := paramsPath(cmd)
			if len(args) == 1 {
				path = args[0]
			}
			err := runParams(cmd.OutOrStdout(), path)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	return paramsCmd
}

func runParams(w io.Writer, path string) error {
	h, err := ioparams.Load(path)
	if err != nil {
		return err
	}

	printHierarchy(w, h)
	for _, v := range h.Warnings {
		scope := v.Group
		if v.Species != "" {
			scope += "/" + v.Species
		}
		gn.Warn("<warn>%s: %s</warn>\n   %s", scope, v.Message, v.Suggestion)
	}
	gn.Info(
		"File <em>%s</em> is valid: %d groups, %d lines",
		path, len(h.Groups), len(h.Lines()),
	)
	return nil
}

func printHierarchy(w io.Writer, h *emission.Hierarchy) {
	fmt.Fprintf(w, "version: %s\n", h.Version)
	for _, g := range h.Groups {
		var ties []string
		if g.TieRedshift {
			ties = append(ties, "redshift")
		}
		if g.TieDispersion {
			ties = append(ties, "dispersion")
		}
		tie := "none"
		if len(ties) > 0 {
			tie = strings.Join(ties, ", ")
		}
		fmt.Fprintf(w, "%s (tied: %s)\n", g.Name, tie)
		for _, sp := range g.Species {
			fmt.Fprintf(w, "  %-12s flag %2d:", sp.Name, sp.Flag)
			for _, l := range sp.Lines {
				fmt.Fprintf(w, " %g", l.Wavelength)
				if l.HasRatio() {
					fmt.Fprintf(w, "(%g)", *l.RelStrength)
				}
			}
			fmt.Fprintln(w)
		}
	}
}
