package export

import (
	"encoding/json"
	"os"
)

// ToJSON writes any report as indented JSON and returns the absolute path
// written. The struct tags preserve the report's canonical key names, so
// every shape serializes as-is.
func (e *Exporter) ToJSON(report interface{}, filename string) (string, error) {
	path, err := e.resolve(filename, ".json")
	if err != nil {
		return "", err
	}

	payload, err := json.MarshalIndent(report, "", "    ")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", err
	}

	e.log.Info().Str("path", path).Msg("json report written")
	return path, nil
}
