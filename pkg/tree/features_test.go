package tree

import (
	"slices"
	"testing"
)

func TestFeatures(t *testing.T) {
	f := New[string, string]()
	n := f.NewNode("R", "root")
	n.Set("afeature", "avalue")

	tests := []struct {
		name   string
		key    string
		want   any
		wantOK bool
	}{
		{"ReservedID", FeatureID, "root", true},
		{"ReservedValue", FeatureValue, "R", true},
		{"Set", "afeature", "avalue", true},
		{"Absent", "missing", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := n.Get(tt.key)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Get(%q) = (%v, %v), want (%v, %v)", tt.key, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	if !n.HasFeature("afeature") || !n.HasFeatures() {
		t.Error("feature should be present")
	}

	n.Set("afeature", 42)
	if got, _ := n.Get("afeature"); got != 42 {
		t.Errorf("overwrite: Get = %v, want 42", got)
	}

	n.Unset("afeature")
	if _, ok := n.Get("afeature"); ok {
		t.Error("feature still present after Unset")
	}
	if n.HasFeatures() {
		t.Error("HasFeatures() = true after removing the only feature")
	}
	n.Unset("afeature")
}

func TestFeaturesReservedShadowing(t *testing.T) {
	f := New[int, string]()
	n := f.NewNode("payload", 7)
	n.Set(FeatureID, "stored")

	if got, _ := n.Get(FeatureID); got != 7 {
		t.Errorf("Get(id) = %v, want the node id 7", got)
	}
	if !n.HasFeature(FeatureID) {
		t.Error("the stored feature should still be present in the map")
	}
}

func TestFeaturesCopy(t *testing.T) {
	f := New[string, any]()
	n := f.NewNode(nil, "n")
	n.Set("b", 2)
	n.Set("a", 1)

	feats := n.Features()
	feats["c"] = 3
	if n.HasFeature("c") {
		t.Error("Features() must return a copy")
	}
	if got := n.FeatureNames(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("FeatureNames() = %v", got)
	}
	if f.NewNode(nil, "empty").Features() == nil {
		t.Error("Features() should never be nil")
	}
}

func TestValue(t *testing.T) {
	f := New[string, int]()
	n := f.NewNode(1, "n")
	n.SetValue(5)
	if n.Value() != 5 {
		t.Errorf("Value() = %d, want 5", n.Value())
	}
	if got, _ := n.Get(FeatureValue); got != 5 {
		t.Errorf("Get(value) = %v, want 5", got)
	}
}
