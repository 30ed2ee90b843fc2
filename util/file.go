package util

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// SaveJson writes data as indented json, creating parent directories as needed
func SaveJson(path string, data interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	bs, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, bs, 0644)
}
