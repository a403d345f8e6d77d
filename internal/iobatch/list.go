package iobatch

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Item is one spectrum of a batch.
type Item struct {
	// Path to the spectrum file.
	Path string

	// Redshift of the object.
	Redshift float64
}

// ReadList reads a list of spectra. Every line has a path and a redshift
// separated by whitespace or a comma. Relative paths are resolved against
// the directory of the list.
func ReadList(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ListError(path, err)
	}
	defer f.Close()

	dir := filepath.Dir(path)
	var res []Item
	sc := bufio.NewScanner(f)
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
		if len(fields) != 2 {
			err = fmt.Errorf("row %d: want 2 fields, got %d", row, len(fields))
			return nil, ListError(path, err)
		}
		z, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, ListError(path, fmt.Errorf("row %d: %w", row, err))
		}
		p := fields[0]
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		res = append(res, Item{Path: p, Redshift: z})
	}
	if err = sc.Err(); err != nil {
		return nil, ListError(path, err)
	}
	return res, nil
}
