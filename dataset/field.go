package dataset

import (
	"encoding/json"
	"strconv"

	"hermannm.dev/enumnames"
	"hermannm.dev/wrap"
)

// Numeric columns of the dataset.
type Field uint8

const (
	FieldPopulation Field = iota + 1
	FieldTotalCases
	FieldTotalDeaths
	FieldTotalVaccinations
	FieldNewCases
	FieldNewDeaths
	FieldNewVaccinations
)

var fieldNames = enumnames.NewMap(map[Field]string{
	FieldPopulation:        "population",
	FieldTotalCases:        "total_cases",
	FieldTotalDeaths:       "total_deaths",
	FieldTotalVaccinations: "total_vaccinations",
	FieldNewCases:          "new_cases",
	FieldNewDeaths:         "new_deaths",
	FieldNewVaccinations:   "new_vaccinations",
})

// In column order of the source dataset.
var Fields = []Field{
	FieldPopulation,
	FieldTotalCases,
	FieldTotalDeaths,
	FieldTotalVaccinations,
	FieldNewCases,
	FieldNewDeaths,
	FieldNewVaccinations,
}

func ParseField(name string) (Field, error) {
	var field Field
	if err := json.Unmarshal([]byte(strconv.Quote(name)), &field); err != nil {
		return 0, wrap.Errorf(err, "unrecognized field '%s'", name)
	}
	return field, nil
}

func (field Field) IsValid() bool {
	return fieldNames.ContainsEnumValue(field)
}

// Also the field's column name in the source dataset.
func (field Field) String() string {
	return fieldNames.GetNameOrFallback(field, "INVALID_FIELD")
}

func (field Field) isInteger() bool {
	switch field {
	case FieldPopulation, FieldTotalCases, FieldTotalDeaths, FieldTotalVaccinations:
		return true
	default:
		return false
	}
}

func (field Field) MarshalJSON() ([]byte, error) {
	return fieldNames.MarshalToNameJSON(field)
}

func (field *Field) UnmarshalJSON(bytes []byte) error {
	return fieldNames.UnmarshalFromNameJSON(bytes, field)
}
