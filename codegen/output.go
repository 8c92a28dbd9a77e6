package codegen

import (
	"encoding/hex"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/crypto/blake2b"
)

// Output maps slash-separated paths relative to the output root to file
// contents.
type Output map[string]string

// Paths returns the file paths in sorted order.
func (o Output) Paths() []string {
	return slices.Sorted(maps.Keys(o))
}

// Write creates every file below dir, making directories as needed.
func (o Output) Write(dir string) error {
	for _, p := range o.Paths() {
		dst := filepath.Join(dir, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", p, err)
		}
		if err := os.WriteFile(dst, []byte(o[p]), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", p, err)
		}
	}
	return nil
}

// Digest hashes paths and contents so callers can skip rebuilding unchanged
// bindings.
func (o Output) Digest() string {
	h, _ := blake2b.New256(nil)
	for _, p := range o.Paths() {
		fmt.Fprintf(h, "%d:%s%d:", len(p), p, len(o[p]))
		h.Write([]byte(o[p]))
	}
	return hex.EncodeToString(h.Sum(nil))
}
