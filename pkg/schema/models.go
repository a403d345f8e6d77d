// Package schema provides storage models for built spectral models.
// The same models are migrated by GORM for PostgreSQL and created from
// their ddl tags for SQLite.
package schema

import (
	"time"
)

// DDLGenerator defines how Go models generate SQL DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the table name for this model.
	TableName() string
}

// Run is one invocation of gelato that built models for one or more
// spectra with the same parameter file.
type Run struct {
	// ID is a random UUID of the run.
	ID string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY" gorm:"primaryKey;type:varchar(36)"`

	// Version of gelato that made the run.
	Version string `db:"version" ddl:"VARCHAR(50)" gorm:"type:varchar(50)"`

	// ParamsPath is the emission-line parameter file.
	ParamsPath string `db:"params_path" ddl:"TEXT"`

	// ParamsVersion is the version of the parameter file.
	ParamsVersion string `db:"params_version" ddl:"VARCHAR(50)" gorm:"type:varchar(50)"`

	// LineRegion is the half-width of fitting regions in Angstrom.
	LineRegion float64 `db:"line_region" ddl:"DOUBLE PRECISION"`

	// StartedAt is the time when the run started.
	StartedAt time.Time `db:"started_at" ddl:"TIMESTAMP"`
}

// SpectrumRecord describes the model built for one spectrum.
type SpectrumRecord struct {
	// ID is UUID v5 generated from the run ID and the spectrum path.
	ID string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY" gorm:"primaryKey;type:varchar(36)"`

	// RunID refers to Run.
	RunID string `db:"run_id" ddl:"VARCHAR(36) NOT NULL" gorm:"type:varchar(36);index;not null"`

	// Path of the spectrum file.
	Path string `db:"path" ddl:"TEXT NOT NULL" gorm:"not null"`

	// Redshift is the initial redshift of the object.
	Redshift float64 `db:"redshift" ddl:"DOUBLE PRECISION"`

	// Pixels is the number of data points.
	Pixels int `db:"pixels" ddl:"INTEGER"`

	// Regions is the number of fitting regions.
	Regions int `db:"regions" ddl:"INTEGER"`

	// Components is the number of model components.
	Components int `db:"components" ddl:"INTEGER"`

	// Params is the size of the parameter vector.
	Params int `db:"params" ddl:"INTEGER"`

	// FreeParams is the number of parameters without ties.
	FreeParams int `db:"free_params" ddl:"INTEGER"`

	// DroppedLines is the number of lines outside of the data.
	DroppedLines int `db:"dropped_lines" ddl:"INTEGER"`
}

// ParameterRecord is one slot of the parameter vector of a model.
type ParameterRecord struct {
	// SpectrumID refers to SpectrumRecord.
	SpectrumID string `db:"spectrum_id" ddl:"VARCHAR(36) NOT NULL" gorm:"primaryKey;type:varchar(36)"`

	// Position is the index in the parameter vector.
	Position int `db:"position" ddl:"INTEGER NOT NULL" gorm:"primaryKey;autoIncrement:false"`

	// Name is the qualified parameter name.
	Name string `db:"name" ddl:"VARCHAR(255) NOT NULL" gorm:"type:varchar(255);index;not null"`

	// GroupName is the emission group, or Continuum.
	GroupName string `db:"group_name" ddl:"VARCHAR(100)" gorm:"type:varchar(100)"`

	// Species is the species, or the continuum region.
	Species string `db:"species" ddl:"VARCHAR(100)" gorm:"type:varchar(100)"`

	// Wavelength is the rest wavelength of the line, or the center of
	// the continuum region.
	Wavelength float64 `db:"wavelength" ddl:"DOUBLE PRECISION"`

	// Role of the parameter, for example Redshift or Flux.
	Role string `db:"role" ddl:"VARCHAR(50)" gorm:"type:varchar(50)"`

	// Value is the initial value with ties applied.
	Value float64 `db:"value" ddl:"DOUBLE PRECISION"`

	// TiedTo is the name of the source parameter, empty for free ones.
	TiedTo string `db:"tied_to" ddl:"VARCHAR(255)" gorm:"type:varchar(255)"`

	// Scale multiplies the source value of a tied parameter.
	Scale float64 `db:"scale" ddl:"DOUBLE PRECISION"`

	// Free is true for parameters without ties.
	Free bool `db:"free" ddl:"BOOLEAN"`
}

// Result is everything stored for one spectrum.
type Result struct {
	Spectrum   SpectrumRecord
	Parameters []ParameterRecord
}
