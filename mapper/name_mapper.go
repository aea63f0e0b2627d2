package mapper

import (
	"github.com/iancoleman/strcase"
)

// Logical destination table names. The plan tables use PascalCase table
// names and lowerCamel columns in the deployed schema; NewDestinationNameMapper
// translates the logical snake_case names used throughout the engine.
const (
	TableAdmins       = "admins"
	TableCountries    = "countries"
	TableCities       = "country_cities"
	TableCustomers    = "customers"
	TableLeads        = "leads"
	TablePlanGroups   = "membership_plan_group"
	TablePlans        = "single_membership_plan"
	TablePaymentPlans = "payment_plan"
)

var camelTables = map[string]bool{
	TablePlanGroups:   true,
	TablePlans:        true,
	TablePaymentPlans: true,
}

// NameMapper defines the interface for mapping table and column names
type NameMapper interface {
	// MapTableName maps a logical table name to the physical table name
	MapTableName(tableName string) string

	// MapColumnName maps a logical column name to the physical column name for a specific table
	MapColumnName(tableName string, columnName string) string
}

// DefaultNameMapper provides a default implementation that doesn't change names
type DefaultNameMapper struct{}

// NewDefaultNameMapper creates a new default name mapper
func NewDefaultNameMapper() *DefaultNameMapper {
	return &DefaultNameMapper{}
}

// MapTableName returns the table name unchanged
func (m *DefaultNameMapper) MapTableName(tableName string) string {
	return tableName
}

// MapColumnName returns the column name unchanged
func (m *DefaultNameMapper) MapColumnName(tableName string, columnName string) string {
	return columnName
}

// CustomNameMapper allows explicit mappings plus transformer fallbacks
type CustomNameMapper struct {
	// TableMappings maps logical table names to physical table names
	TableMappings map[string]string

	// ColumnMappings maps table names to their column mappings
	// Format: map[tableName]map[logicalColumn]physicalColumn
	ColumnMappings map[string]map[string]string

	// TableNameTransformer is applied after checking TableMappings
	TableNameTransformer func(string) string

	// ColumnNameTransformer is applied after checking ColumnMappings
	ColumnNameTransformer func(tableName, columnName string) string
}

// NewCustomNameMapper creates a new custom name mapper
func NewCustomNameMapper() *CustomNameMapper {
	return &CustomNameMapper{
		TableMappings:  make(map[string]string),
		ColumnMappings: make(map[string]map[string]string),
	}
}

// NewDestinationNameMapper maps logical names onto the deployed schema:
// CRM tables keep snake_case, plan tables switch to PascalCase tables with
// lowerCamel columns.
func NewDestinationNameMapper() *CustomNameMapper {
	m := NewCustomNameMapper()
	m.SetTableNameTransformer(func(name string) string {
		if camelTables[name] {
			return strcase.ToCamel(name)
		}
		return name
	})
	m.SetColumnNameTransformer(func(tableName, columnName string) string {
		if camelTables[tableName] {
			return strcase.ToLowerCamel(columnName)
		}
		return columnName
	})
	return m
}

// MapTableName maps a logical table name to the physical table name
func (m *CustomNameMapper) MapTableName(tableName string) string {
	if mapped, ok := m.TableMappings[tableName]; ok {
		return mapped
	}
	if m.TableNameTransformer != nil {
		return m.TableNameTransformer(tableName)
	}
	return tableName
}

// MapColumnName maps a logical column name to the physical column name
func (m *CustomNameMapper) MapColumnName(tableName string, columnName string) string {
	if tableMappings, ok := m.ColumnMappings[tableName]; ok {
		if mapped, ok := tableMappings[columnName]; ok {
			return mapped
		}
	}
	if m.ColumnNameTransformer != nil {
		return m.ColumnNameTransformer(tableName, columnName)
	}
	return columnName
}

// AddTableMapping adds a table name mapping
func (m *CustomNameMapper) AddTableMapping(logical, physical string) {
	m.TableMappings[logical] = physical
}

// AddColumnMapping adds a column name mapping for a specific table
func (m *CustomNameMapper) AddColumnMapping(tableName, logicalColumn, physicalColumn string) {
	if m.ColumnMappings[tableName] == nil {
		m.ColumnMappings[tableName] = make(map[string]string)
	}
	m.ColumnMappings[tableName][logicalColumn] = physicalColumn
}

// SetTableNameTransformer sets a function to transform all table names
func (m *CustomNameMapper) SetTableNameTransformer(transformer func(string) string) {
	m.TableNameTransformer = transformer
}

// SetColumnNameTransformer sets a function to transform all column names
func (m *CustomNameMapper) SetColumnNameTransformer(transformer func(tableName, columnName string) string) {
	m.ColumnNameTransformer = transformer
}

// PhysicalTables lists the physical names of every destination table.
func PhysicalTables(m NameMapper) []string {
	logical := []string{
		TableAdmins, TableCountries, TableCities, TableCustomers, TableLeads,
		TablePlanGroups, TablePlans, TablePaymentPlans,
	}
	out := make([]string, len(logical))
	for i, name := range logical {
		out[i] = m.MapTableName(name)
	}
	return out
}
