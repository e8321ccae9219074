package model

// Metadata is a free-form mapping of descriptive keys to values. It
// collects caller-supplied descriptions and facts derived from the
// digitized figure, such as original axis units or the scan rate.
type Metadata map[string]any

// Merge returns a new Metadata combining m with overrides. Values from
// overrides win on key collision; nested maps are merged recursively.
// Neither input is modified.
func (m Metadata) Merge(overrides Metadata) Metadata {
	out := m.Copy()
	for k, v := range overrides {
		if sub, ok := v.(map[string]any); ok {
			if existing, ok := out[k].(map[string]any); ok {
				out[k] = map[string]any(Metadata(existing).Merge(sub))
				continue
			}
		}
		out[k] = v
	}
	return out
}

// Copy returns a deep copy of the metadata. Nested map[string]any values
// are copied recursively; other values are copied by assignment.
func (m Metadata) Copy() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		if sub, ok := v.(map[string]any); ok {
			out[k] = map[string]any(Metadata(sub).Copy())
			continue
		}
		out[k] = v
	}
	return out
}
