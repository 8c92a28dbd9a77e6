package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Alia5/flatgen/schema"
	"github.com/Alia5/flatgen/schemas"
)

type List struct{}

// Run prints every registered schema set with its root types.
func (l *List) Run(logger *slog.Logger, out io.Writer) error {
	for _, name := range schemas.List() {
		types, err := schemas.Types(name)
		if err != nil {
			logger.Warn("Skipping schema set", "schema", name, "error", err)
			continue
		}
		roots := make([]string, len(types))
		for i, t := range types {
			roots[i] = t.Name().Camel()
		}
		closure, err := schema.Walk(types...)
		if err != nil {
			logger.Warn("Skipping schema set", "schema", name, "error", err)
			continue
		}
		fmt.Fprintf(out, "%s\t%d types\troots: %v\n", name, len(closure), roots)
	}
	return nil
}
