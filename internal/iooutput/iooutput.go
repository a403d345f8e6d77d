// Package iooutput formats model summaries for the terminal or files.
package iooutput

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gnames/gnfmt"
	"github.com/theskyentist/gelato/pkg/model"
)

var header = []string{
	"Position", "Name", "Group", "Species", "Wavelength", "Role",
	"Value", "TiedTo", "Scale", "Free",
}

// Format converts summary rows to text, json or csv.
func Format(rows []model.Row, format string) (string, error) {
	switch format {
	case "json":
		enc := gnfmt.GNjson{Pretty: true}
		res, err := enc.Encode(rows)
		if err != nil {
			return "", err
		}
		return string(res), nil
	case "csv":
		return toCSV(rows), nil
	case "text", "":
		return toText(rows), nil
	default:
		return "", fmt.Errorf("unknown output format '%s'", format)
	}
}

func fields(i int, r model.Row) []string {
	var scale string
	if r.TiedTo != "" {
		scale = strconv.FormatFloat(r.Scale, 'g', -1, 64)
	}
	return []string{
		strconv.Itoa(i),
		r.Name,
		r.Group,
		r.Species,
		strconv.FormatFloat(r.Wavelength, 'f', -1, 64),
		r.Role,
		strconv.FormatFloat(r.Value, 'g', 6, 64),
		r.TiedTo,
		scale,
		strconv.FormatBool(r.Free),
	}
}

func toCSV(rows []model.Row) string {
	res := make([]string, 0, len(rows)+1)
	res = append(res, gnfmt.ToCSV(header, ','))
	for i, r := range rows {
		res = append(res, gnfmt.ToCSV(fields(i, r), ','))
	}
	return strings.Join(res, "\n") + "\n"
}

// toText prints the index, name, value and tie of every parameter in
// aligned columns.
func toText(rows []model.Row) string {
	width := len("Name")
	for _, r := range rows {
		width = max(width, len(r.Name))
	}
	var sb strings.Builder
	line := fmt.Sprintf("%4s  %-*s  %12s  %s\n", "#", width, "Name", "Value", "Tie")
	sb.WriteString(line)
	sb.WriteString(strings.Repeat("─", len(line)+width/2) + "\n")
	for i, r := range rows {
		tie := "free"
		if r.TiedTo != "" {
			tie = r.TiedTo
			if r.Scale != 1 {
				tie = fmt.Sprintf("%g × %s", r.Scale, r.TiedTo)
			}
		}
		fmt.Fprintf(&sb, "%4d  %-*s  %12.6g  %s\n", i, width, r.Name, r.Value, tie)
	}
	return sb.String()
}
