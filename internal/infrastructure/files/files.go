// Package files stores image files referenced by entities, either on local
// disk or in a Google Cloud Storage bucket.
package files

import (
	"fmt"
	"path"
	"strings"
)

// cleanRef rejects references that would escape the storage root.
func cleanRef(ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("empty file reference")
	}
	cleaned := path.Clean(strings.ReplaceAll(ref, "\\", "/"))
	if path.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("file reference %q escapes storage root", ref)
	}
	return cleaned, nil
}
