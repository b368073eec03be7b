package dto

import (
	"encoding/json"

	"gorm.io/datatypes"
)

func decodeJSON(raw datatypes.JSON, out interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// EncodeStrings marshals a string slice into a JSON column value, nil in nil
// out.
func EncodeStrings(values []string) datatypes.JSON {
	if len(values) == 0 {
		return nil
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
