package review

import (
	"fmt"

	"github.com/aymanbagabas/go-udiff"
)

// renderDiff produces the unified diff text shown in the diff view. For a
// deletion it prepends a short announcement so the operator sees more than
// a wall of minus lines.
func renderDiff(name, old, new string) string {
	if new == "" && old != "" {
		return fmt.Sprintf("File deleted: %s\n\n%s", name, unified(name, old, new))
	}
	return unified(name, old, new)
}

func unified(name, old, new string) string {
	return udiff.Unified("a/"+name, "b/"+name, old, new)
}
