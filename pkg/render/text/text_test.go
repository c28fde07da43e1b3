package text

import (
	"strings"
	"testing"

	"github.com/birchtree/birch/pkg/tree"
)

func sentence(t *testing.T) Node {
	t.Helper()
	f := tree.New[string, any]()
	s := f.NewNode("Dogs bark.", "s")
	np := f.NewNode(nil, "np")
	vp := f.NewNode(nil, "vp")
	w1 := f.NewNode("Dogs", "w1")
	w2 := f.NewNode("bark", "w2")
	w1.Set("pos", "NNS")
	w2.Set("pos", "VBP")
	w2.Set("head", true)
	s.Add(np, vp)
	np.Add(w1)
	vp.Add(w2)
	e, _ := tree.NewEdge(w2, w1, true)
	w2.Link(e)
	return s
}

func lines(s string) []string {
	out := strings.Split(s, "\n")
	for i, l := range out {
		out[i] = strings.TrimRight(l, " ")
	}
	return out
}

func TestRender(t *testing.T) {
	root := sentence(t)

	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "Plain",
			want: []string{
				"s: Dogs bark.",
				"├── np",
				"│   └── w1: Dogs",
				"└── vp",
				"    └── w2: bark",
			},
		},
		{
			name: "Rounded",
			opts: Options{Enumerator: EnumeratorRounded},
			want: []string{
				"s: Dogs bark.",
				"├── np",
				"│   ╰── w1: Dogs",
				"╰── vp",
				"    ╰── w2: bark",
			},
		},
		{
			name: "FeaturesAndLinks",
			opts: Options{Features: true, Links: true},
			want: []string{
				"s: Dogs bark.",
				"├── np",
				"│   └── w1: Dogs [pos=NNS]",
				"└── vp",
				"    └── w2: bark [head=true pos=VBP] {w2 -> w1}",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lines(Render(root, tt.opts))
			if strings.Join(got, "\n") != strings.Join(tt.want, "\n") {
				t.Errorf("Render =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(tt.want, "\n"))
			}
		})
	}
}

func TestRenderSingleNode(t *testing.T) {
	f := tree.New[string, any]()
	if got := Render(f.NewNode(nil, "x"), Options{}); got != "x" {
		t.Errorf("Render = %q, want %q", got, "x")
	}
	if got := Render(Node{}, Options{}); got != "" {
		t.Errorf("Render(zero) = %q", got)
	}
}

func TestRenderAll(t *testing.T) {
	f := tree.New[string, any]()
	got := RenderAll([]Node{f.NewNode(nil, "a"), f.NewNode(nil, "b")}, Options{})
	if got != "a\n\nb" {
		t.Errorf("RenderAll = %q", got)
	}
}

func TestFormatEdge(t *testing.T) {
	f := tree.New[string, any]()
	a, b := f.NewNode(nil, "a"), f.NewNode(nil, "b")
	tests := []struct {
		directed bool
		dir      tree.Direction
		want     string
	}{
		{false, tree.Neutral, "a -- b"},
		{false, tree.Backward, "a -- b"},
		{true, tree.Neutral, "a -> b"},
		{true, tree.Forward, "a -> b"},
		{true, tree.Backward, "b -> a"},
	}
	for _, tt := range tests {
		e, err := tree.NewEdge(a, b, tt.directed, tt.dir)
		if err != nil {
			t.Fatal(err)
		}
		if got := FormatEdge(e); got != tt.want {
			t.Errorf("FormatEdge(directed=%v, %v) = %q, want %q", tt.directed, tt.dir, got, tt.want)
		}
	}
}

func TestParseEnumerator(t *testing.T) {
	for in, want := range map[string]Enumerator{"": EnumeratorDefault, "Rounded": EnumeratorRounded, "default": EnumeratorDefault} {
		got, err := ParseEnumerator(in)
		if err != nil || got != want {
			t.Errorf("ParseEnumerator(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseEnumerator("fancy"); err == nil {
		t.Error("ParseEnumerator(fancy) should fail")
	}
}

func TestLabelReservedFeatureNames(t *testing.T) {
	f := tree.New[string, any]()
	n := f.NewNode("payload", "n1")
	n.Set("id", "stored-id")
	n.Set("value", 7)

	got := Label(n, Options{Features: true})
	if want := "n1: payload [id=stored-id value=7]"; got != want {
		t.Errorf("Label() = %q, want %q", got, want)
	}
}
