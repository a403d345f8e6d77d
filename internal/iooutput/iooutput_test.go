package iooutput_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theskyentist/gelato/internal/iooutput"
	"github.com/theskyentist/gelato/pkg/model"
)

func rows() []model.Row {
	return []model.Row{
		{
			Name: "AGN-[OIII]-5008.24-Flux", Group: "AGN", Species: "[OIII]",
			Wavelength: 5008.24, Role: "Flux", Value: 10, Free: true,
		},
		{
			Name: "AGN-[OIII]-4960.3-Flux", Group: "AGN", Species: "[OIII]",
			Wavelength: 4960.3, Role: "Flux", Value: 3.5,
			TiedTo: "AGN-[OIII]-5008.24-Flux", Scale: 0.35,
		},
	}
}

func TestFormat(t *testing.T) {
	assert := assert.New(t)

	res, err := iooutput.Format(rows(), "text")
	require.Nil(t, err)
	lines := strings.Split(strings.TrimSpace(res), "\n")
	assert.Len(lines, 4)
	assert.Contains(lines[2], "free")
	assert.Contains(lines[3], "0.35 × AGN-[OIII]-5008.24-Flux")

	res, err = iooutput.Format(rows(), "csv")
	require.Nil(t, err)
	lines = strings.Split(strings.TrimSpace(res), "\n")
	assert.Len(lines, 3)
	assert.True(strings.HasPrefix(lines[0], "Position,Name,"))
	assert.Contains(lines[2], "AGN-[OIII]-5008.24-Flux,0.35,false")

	res, err = iooutput.Format(rows(), "json")
	require.Nil(t, err)
	var back []model.Row
	require.Nil(t, json.Unmarshal([]byte(res), &back))
	assert.Equal(rows(), back)

	_, err = iooutput.Format(rows(), "xml")
	assert.Error(err)
}
