package scene

import (
	"fmt"
	"io"
	"strings"

	"github.com/spaghettifunk/anima-gl/engine/core"
)

// Dump writes the node hierarchy, starting at the root, followed by the
// component buckets.
func Dump(w io.Writer, s *Scene) error {
	if _, err := fmt.Fprintf(w, "scene %q (%s)\n", s.name, core.ShortID(s.id)); err != nil {
		return err
	}
	if root, err := s.Root(); err == nil {
		if err := dumpNode(w, root, 1); err != nil {
			return err
		}
	}
	for k := Kind(0); k < kindCount; k++ {
		components := s.ComponentsOf(k)
		if len(components) == 0 {
			continue
		}
		names := make([]string, len(components))
		for i, c := range components {
			names[i] = c.Name()
		}
		if _, err := fmt.Fprintf(w, "%s[%d]: %s\n", k, len(components), strings.Join(names, ", ")); err != nil {
			return err
		}
	}
	return nil
}

func dumpNode(w io.Writer, n *Node, depth int) error {
	kinds := make([]string, 0, len(n.components))
	for _, c := range n.components {
		kinds = append(kinds, c.Kind().String())
	}
	if _, err := fmt.Fprintf(w, "%s- %s [%s]\n", strings.Repeat("  ", depth-1), n.name, strings.Join(kinds, " ")); err != nil {
		return err
	}
	for _, child := range n.Children() {
		if err := dumpNode(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}
