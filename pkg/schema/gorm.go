package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models in creation order.
func AllModels() []DDLGenerator {
	return []DDLGenerator{
		&Run{},
		&SpectrumRecord{},
		&ParameterRecord{},
	}
}

// TableNames returns names of all tables in creation order.
func TableNames() []string {
	models := AllModels()
	res := make([]string, len(models))
	for i, m := range models {
		res[i] = m.TableName()
	}
	return res
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	models := AllModels()
	res := make([]any, len(models))
	for i := range models {
		res[i] = models[i]
	}
	return db.AutoMigrate(res...)
}
