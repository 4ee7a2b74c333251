package planjson

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WritePlan atomically writes plan.json under outDir: write to a temp
// file, then rename into place, so a reader never observes a partial
// file.
func WritePlan(outDir string, plan Plan) error {
	return writeJSON(filepath.Join(outDir, "plan.json"), plan)
}

// WriteShoppingList atomically writes shopping_list.json under outDir.
func WriteShoppingList(outDir string, list ShoppingList) error {
	return writeJSON(filepath.Join(outDir, "shopping_list.json"), list)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename into place %s: %w", path, err)
	}
	return nil
}
