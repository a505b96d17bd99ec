package postgres

import "encoding/json"

// jsonb marshals a value for a JSONB column parameter. nil slices/maps
// marshal to their empty JSON literal rather than SQL NULL.
func jsonb(v any) ([]byte, error) {
	return json.Marshal(v)
}

// scanJSONB unmarshals a JSONB column into dst, treating empty input as a
// no-op so zero values survive.
func scanJSONB(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
