// Package pathsec validates script-supplied paths and filenames before any
// file access. Content scripts may only reference files inside their
// session's base directory; everything else is rejected.
package pathsec

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrEscapesBase is wrapped by ValidatePath failures where the candidate
// resolves outside the base directory.
var ErrEscapesBase = errors.New("path escapes base directory")

// ValidatePath resolves candidate relative to base and returns the absolute
// resolved path. It fails if candidate is empty or absolute, if the cleaned
// result lies outside base, or if an existing candidate resolves through
// symlinks to a location outside base.
//
// Postcondition: the returned path is confined to base, or err is non-nil
// and no file access beyond symlink resolution has occurred.
func ValidatePath(candidate, base string) (string, error) {
	if candidate == "" {
		return "", errors.New("validating path: empty path")
	}
	if filepath.IsAbs(candidate) {
		return "", fmt.Errorf("validating path %q: absolute paths are not allowed", candidate)
	}

	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("validating path %q: resolving base %q: %w", candidate, base, err)
	}
	if resolved, err := filepath.EvalSymlinks(absBase); err == nil {
		absBase = resolved
	}

	joined := filepath.Join(absBase, candidate)
	if !confined(joined, absBase) {
		return "", fmt.Errorf("validating path %q: %w", candidate, ErrEscapesBase)
	}

	// A symlink inside base may still point outside it. Only resolvable for
	// paths that exist; nonexistent paths fail later at read time.
	if target, err := filepath.EvalSymlinks(joined); err == nil {
		if !confined(target, absBase) {
			return "", fmt.Errorf("validating path %q: symlink target %q: %w", candidate, target, ErrEscapesBase)
		}
		return target, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("validating path %q: %w", candidate, err)
	}

	return joined, nil
}

// confined reports whether path equals base or lies underneath it.
func confined(path, base string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// ValidateFilename rejects names unsafe for use as registry keys that might
// later be interpreted as paths: empty names, path separators, parent
// references, and NUL.
func ValidateFilename(name string) error {
	switch {
	case name == "":
		return errors.New("validating filename: empty name")
	case name == "." || name == "..":
		return fmt.Errorf("validating filename %q: relative directory reference", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("validating filename %q: path separators are not allowed", name)
	case strings.ContainsRune(name, 0):
		return fmt.Errorf("validating filename %q: NUL byte", name)
	}
	return nil
}
