package entity

import (
	"regexp"
	"time"
)

// Tipos válidos para un CustomField.
const (
	FieldTypeText             = "text"
	FieldTypeDropdown         = "dropdown"
	FieldTypeDropdownCheckbox = "dropdown_checkbox"
	FieldTypeDatetime         = "datetime"
)

// fieldNamePattern: letras, dígitos, guion bajo y espacio. Es el mismo patrón
// que se exige antes de interpolar el nombre en el ALTER TABLE, así que
// cualquier nombre aceptado es seguro como identificador entre comillas.
var fieldNamePattern = regexp.MustCompile(`^[A-Za-z0-9_ ]+$`)

// CustomField es la definición de un atributo dinámico de Customer:
// nombre único, tipo y opciones de dropdown serializadas (JSON, opcional).
// Inmutable después de creado: no hay camino de update ni delete.
type CustomField struct {
	ID              int64
	FieldName       string
	FieldType       string
	DropdownOptions *string // JSON array serializado, NULL si no aplica
	CreatedAt       time.Time
}

// FieldValue es una fila EAV: el valor de un CustomField para un cliente,
// único por (CompanyUniqueID, FieldID).
type FieldValue struct {
	CompanyUniqueID string
	FieldID         int64
	FieldValue      string
}

// ValidFieldName reporta si name cumple el patrón permitido para columnas dinámicas.
func ValidFieldName(name string) bool {
	return fieldNamePattern.MatchString(name)
}

// ValidFieldType reporta si t es uno de los cuatro tipos aceptados.
func ValidFieldType(t string) bool {
	switch t {
	case FieldTypeText, FieldTypeDropdown, FieldTypeDropdownCheckbox, FieldTypeDatetime:
		return true
	}
	return false
}

// ColumnType devuelve el tipo SQL de la columna que respalda un campo del tipo dado.
// text acota a 255; dropdown y dropdown_checkbox guardan listas serializadas sin cota.
func ColumnType(fieldType string) (string, bool) {
	switch fieldType {
	case FieldTypeText:
		return "VARCHAR(255)", true
	case FieldTypeDropdown, FieldTypeDropdownCheckbox:
		return "TEXT", true
	case FieldTypeDatetime:
		return "TIMESTAMPTZ", true
	}
	return "", false
}
