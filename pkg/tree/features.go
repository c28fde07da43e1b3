package tree

import (
	"maps"
	"slices"
)

// Reserved feature names. [Node.Get] answers them from the node itself
// rather than from the feature map.
const (
	FeatureID    = "id"
	FeatureValue = "value"
)

// Features stores arbitrary named annotations attached to a node.
type Features map[string]any

// Get returns the named feature. The reserved names FeatureID and
// FeatureValue return the node's id and payload; a feature stored under a
// reserved name is shadowed by them. The boolean is false when the feature
// is absent.
func (n Node[K, V]) Get(name string) (any, bool) {
	e := n.entry()
	switch name {
	case FeatureID:
		return e.id, true
	case FeatureValue:
		return e.value, true
	}
	v, ok := e.features[name]
	return v, ok
}

// Set inserts or overwrites a feature.
func (n Node[K, V]) Set(name string, value any) {
	e := n.entry()
	if e.features == nil {
		e.features = Features{}
	}
	e.features[name] = value
}

// Unset removes a feature. Unsetting a missing feature is a no-op.
func (n Node[K, V]) Unset(name string) { delete(n.entry().features, name) }

// HasFeature reports whether name is set in the feature map.
func (n Node[K, V]) HasFeature(name string) bool {
	_, ok := n.entry().features[name]
	return ok
}

// HasFeatures reports whether any feature is set.
func (n Node[K, V]) HasFeatures() bool { return len(n.entry().features) > 0 }

// Features returns a copy of the feature map. It is never nil.
func (n Node[K, V]) Features() Features {
	out := maps.Clone(n.entry().features)
	if out == nil {
		out = Features{}
	}
	return out
}

// FeatureNames returns the set feature names in sorted order.
func (n Node[K, V]) FeatureNames() []string {
	return slices.Sorted(maps.Keys(n.entry().features))
}
