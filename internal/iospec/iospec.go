// Package iospec reads spectra from ASCII tables. Every data row has
// wavelength, flux and sigma columns separated by whitespace or commas.
// Empty lines and text after '#' are ignored.
package iospec

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/theskyentist/gelato/pkg/emission"
	"github.com/theskyentist/gelato/pkg/spectrum"
)

// Read loads a spectrum from a file and prepares it for model
// construction at redshift z with the given emission groups.
func Read(
	path string,
	z float64,
	groups []emission.Group,
	lineRegion float64,
) (*spectrum.Spectrum, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, SpectrumReadError(path, err)
	}
	defer f.Close()

	wav, flux, sigma, err := Parse(f)
	if err != nil {
		return nil, SpectrumReadError(path, err)
	}

	res, err := spectrum.New(wav, flux, sigma, z, groups, lineRegion)
	if err != nil {
		return nil, SpectrumInvalidError(path, err)
	}

	for _, v := range res.Dropped {
		slog.Debug("Line is outside of the spectrum",
			"path", path,
			"group", v.Group,
			"species", v.Species,
			"wavelength", v.Wavelength,
		)
	}
	slog.Info("Spectrum loaded",
		"path", path,
		"pixels", len(res.Wav),
		"regions", len(res.Regions),
		"dropped_lines", len(res.Dropped),
	)
	return res, nil
}

// Parse reads wavelength, flux and sigma columns of an ASCII table.
// Columns after the third one are ignored.
func Parse(r io.Reader) (wav, flux, sigma []float64, err error) {
	sc := bufio.NewScanner(r)
	var row int
	for sc.Scan() {
		row++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 3 {
			return nil, nil, nil,
				fmt.Errorf("row %d: want 3 columns, got %d", row, len(fields))
		}

		var vals [3]float64
		for i := range vals {
			if vals[i], err = strconv.ParseFloat(fields[i], 64); err != nil {
				return nil, nil, nil, fmt.Errorf("row %d: %w", row, err)
			}
		}
		wav = append(wav, vals[0])
		flux = append(flux, vals[1])
		sigma = append(sigma, vals[2])
	}
	if err = sc.Err(); err != nil {
		return nil, nil, nil, err
	}
	return wav, flux, sigma, nil
}
