// Package ioparams reads emission-line parameter files. Files with .yaml
// or .yml extension are decoded as YAML, files with .hcl extension as HCL.
package ioparams

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/gnames/gnlib"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/theskyentist/gelato/pkg/config"
	"github.com/theskyentist/gelato/pkg/emission"
	"gopkg.in/yaml.v3"
)

// Load reads, decodes and validates a parameter file. Validation warnings
// are logged and kept in the returned hierarchy.
func Load(path string) (*emission.Hierarchy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ParamsReadError(path, err)
	}
	return Decode(path, data)
}

// Decode creates a hierarchy from the content of a parameter file. The
// format is determined by the file name.
func Decode(path string, data []byte) (*emission.Hierarchy, error) {
	var res emission.Hierarchy
	var err error

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &res)
	case ".hcl":
		err = hclsimple.Decode(filepath.Base(path), data, nil, &res)
	default:
		err = fmt.Errorf("unknown extension '%s'", ext)
	}
	if err != nil {
		return nil, ParamsDecodeError(path, err)
	}

	if err = checkVersion(res.Version); err != nil {
		if errors.Is(err, errNoVersion) {
			slog.Warn("Parameter file has no version",
				"path", path, "assumed", config.MinParamsVersion)
		} else {
			return nil, ParamsVersionError(path, res.Version, config.MinParamsVersion)
		}
	}

	if err = res.Validate(); err != nil {
		return nil, ParamsInvalidError(path, err)
	}

	for _, w := range res.Warnings {
		slog.Warn("Parameter file warning",
			"group", w.Group,
			"species", w.Species,
			"message", w.Message,
			"suggestion", w.Suggestion)
	}

	return &res, nil
}

var errNoVersion = errors.New("no version")

// checkVersion accepts versions that are not older than the minimal one
// and belong to the same major release.
func checkVersion(version string) error {
	if version == "" {
		return errNoVersion
	}
	if !gnlib.IsVersion(version) {
		return fmt.Errorf("'%s' is not a version", version)
	}
	if gnlib.CmpVersion(version, config.MinParamsVersion) < 0 {
		return fmt.Errorf("version %s is too old", version)
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return err
	}
	minV, err := semver.NewVersion(config.MinParamsVersion)
	if err != nil {
		return err
	}
	if v.Major() != minV.Major() {
		return fmt.Errorf("major version %d is not supported", v.Major())
	}
	return nil
}
