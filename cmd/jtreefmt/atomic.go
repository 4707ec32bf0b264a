package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// writeAtomic writes data to path via a temp-file-then-rename sequence so a
// crash or interrupt never leaves a half-written file at path. Adapted from
// gjcs1.WriteAtomic for --in-place rewrites.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".jtreefmt-*.tmp")
	if err != nil {
		return fmt.Errorf("jtreefmt: create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("jtreefmt: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("jtreefmt: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("jtreefmt: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("jtreefmt: rename temp to final: %w", err)
	}

	success = true
	syncDir(dir)
	return nil
}

// syncDir best-effort fsyncs dir so the rename itself survives a crash.
// Errors are ignored: this is a SHOULD, not a MUST.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	defer func() { _ = d.Close() }()
	_ = d.Sync()
}
