package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model any, tableName string, constraints ...string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}
	for _, c := range constraints {
		columns = append(columns, "    "+c)
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

// Columns returns column names of a model in field order.
func Columns(model any) []string {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	var res []string
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("db"); tag != "" {
			res = append(res, tag)
		}
	}
	return res
}

// Run DDL methods
func (r Run) TableDDL() string {
	return generateDDL(r, r.TableName())
}

func (r Run) IndexDDL() []string {
	return nil
}

func (r Run) TableName() string {
	return "runs"
}

// SpectrumRecord DDL methods
func (s SpectrumRecord) TableDDL() string {
	return generateDDL(s, s.TableName())
}

func (s SpectrumRecord) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_spectra_run_id ON spectra(run_id);",
		"CREATE INDEX IF NOT EXISTS idx_spectra_path ON spectra(path);",
	}
}

func (s SpectrumRecord) TableName() string {
	return "spectra"
}

// ParameterRecord DDL methods
func (p ParameterRecord) TableDDL() string {
	return generateDDL(p, p.TableName(), "PRIMARY KEY (spectrum_id, position)")
}

func (p ParameterRecord) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_parameters_name ON parameters(name);",
	}
}

func (p ParameterRecord) TableName() string {
	return "parameters"
}
