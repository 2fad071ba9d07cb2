package acquisition

import (
	"maps"

	"github.com/ghanatheyakash/Resume-builder/internal/types"
)

// FillMissing returns a copy of doc where every absent canonical field holds its
// empty default. Keys already present are kept untouched, even when null or
// wrongly shaped.
func FillMissing(doc types.Document) types.Document {
	out := make(types.Document, len(doc)+len(types.CanonicalFields()))
	maps.Copy(out, doc)

	for _, field := range types.CanonicalFields() {
		if _, ok := out[field.Name]; !ok {
			out[field.Name] = field.Empty()
		}
	}
	return out
}
