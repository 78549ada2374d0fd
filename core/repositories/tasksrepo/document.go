package tasksrepo

// Document is a schemaless task body. Whatever JSON object the client
// submits is stored verbatim; values are the usual encoding/json variants
// (string, float64, bool, nil, nested map, slice).
type Document map[string]any

// Merge returns a copy of d with the top-level keys of patch overwriting
// matching keys. Keys absent from patch are untouched. This mirrors the
// jsonb || operator used by the store, so in-memory stand-ins behave like
// the database.
func (d Document) Merge(patch Document) Document {
	merged := make(Document, len(d)+len(patch))
	for k, v := range d {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}

// Clone returns a shallow copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	clone := make(Document, len(d))
	for k, v := range d {
		clone[k] = v
	}
	return clone
}
