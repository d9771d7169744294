package ecs

// IntersectEntities returns the entities carrying both components, e.g. every
// scripted target with a Transform. The smaller set drives the walk, and
// stale generations in the larger set do not match.
func IntersectEntities(a, b *SparseSet) []Entity {
	if a == nil || b == nil {
		return nil
	}
	if len(a.denseEntities) > len(b.denseEntities) {
		a, b = b, a
	}
	out := make([]Entity, 0, len(a.denseEntities))
	for _, e := range a.denseEntities {
		if b.Has(e) {
			out = append(out, e)
		}
	}
	return out
}
