package chart

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile persists rendered chart bytes at path, creating the parent
// directory as needed. The path is a single shared artifact overwritten on
// every successful fetch; concurrent viewers may briefly see another
// request's chart, which is acceptable here.
func WriteFile(path string, png []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}
