package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/birchtree/birch/pkg/errors"
	treeio "github.com/birchtree/birch/pkg/io"
	"github.com/birchtree/birch/pkg/observability"
)

const sentenceDoc = `
roots:
  - id: s
    value: Dogs bark.
    children:
      - id: np
        children:
          - id: w1
            value: Dogs
            features: {pos: NNS}
      - id: vp
        children:
          - id: w2
            value: bark
            features: {pos: VBP, head: true}
links:
  - from: [s, vp, w2]
    to: [s, np, w1]
    directed: true
`

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(observability.Reset)

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func sentenceFile(t *testing.T) string {
	t.Helper()
	return writeFile(t, t.TempDir(), "sentence.yaml", sentenceDoc)
}

func TestShowCommand(t *testing.T) {
	path := sentenceFile(t)

	out, err := execute(t, "show", path, "--root", "s/vp", "--features", "--links")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	want := "vp\n└── w2: bark [head=true pos=VBP] {w2 -> w1}"
	if got := strings.TrimSpace(out); got != want {
		t.Errorf("show =\n%s\nwant\n%s", got, want)
	}

	if _, err := execute(t, "show", path, "--enumerator", "fancy"); err == nil {
		t.Error("show with a bad enumerator should fail")
	}
	if _, err := execute(t, "show", path, "--root", "s/nope"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("show --root s/nope err = %v, want NOT_FOUND", err)
	}
}

func TestStatsCommand(t *testing.T) {
	out, err := execute(t, "stats", sentenceFile(t))
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	for _, want := range []string{"Root", "Height", "5 nodes", "1 edges"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}
}

func TestFindCommand(t *testing.T) {
	path := sentenceFile(t)

	out, err := execute(t, "find", path, "w2")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !strings.Contains(out, "s/vp/w2 bark [head=true pos=VBP]") {
		t.Errorf("find output = %q", out)
	}

	out, err = execute(t, "find", path, "s")
	if err != nil || !strings.HasPrefix(out, "s ") {
		t.Errorf("find root = %q, %v", out, err)
	}

	if _, err := execute(t, "find", path, "w9"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("find w9 err = %v, want NOT_FOUND", err)
	}
}

func TestQueryCommand(t *testing.T) {
	path := sentenceFile(t)

	out, err := execute(t, "query", path, `has("head")`)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if strings.TrimSpace(out) != "s/vp/w2 bark [head=true pos=VBP]" {
		t.Errorf("query output = %q", out)
	}

	out, err = execute(t, "query", path, "leaf", "--count")
	if err != nil || strings.TrimSpace(out) != "2" {
		t.Errorf("query --count = %q, %v", out, err)
	}

	if _, err := execute(t, "query", path, "depth +"); !errors.Is(err, errors.ErrCodeInvalidQuery) {
		t.Errorf("bad query err = %v, want INVALID_QUERY", err)
	}
	if _, err := execute(t, "query", path, "features.pos"); !errors.Is(err, errors.ErrCodeInvalidQuery) {
		t.Errorf("non-bool query err = %v, want INVALID_QUERY", err)
	}
}

func TestRenderCommand(t *testing.T) {
	path := sentenceFile(t)
	dir := filepath.Dir(path)

	if _, err := execute(t, "render", path, "-f", "dot,json", "--links"); err != nil {
		t.Fatalf("render: %v", err)
	}
	dot, err := os.ReadFile(filepath.Join(dir, "sentence.dot"))
	if err != nil || !strings.Contains(string(dot), "style=dashed") {
		t.Errorf("sentence.dot = %s, %v", dot, err)
	}
	if _, err := treeio.ImportFile(filepath.Join(dir, "sentence.json"), treeio.Options{}); err != nil {
		t.Errorf("sentence.json does not load: %v", err)
	}

	out, err := execute(t, "render", path, "-f", "txt", "-o", "-", "--root", "s/np")
	if err != nil || strings.TrimSpace(out) != "np\n└── w1: Dogs" {
		t.Errorf("render txt = %q, %v", out, err)
	}

	if _, err := execute(t, "render", path, "-f", "pdf"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("render pdf err = %v, want INVALID_FORMAT", err)
	}
}

func TestDetachCommand(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tree.json",
		`{"roots":[{"id":"r","children":[{"id":"a","children":[{"id":"c"}]},{"id":"b"}]}]}`)

	out, err := execute(t, "detach", path, "r/a", "-f", "json")
	if err != nil {
		t.Fatalf("detach: %v", err)
	}
	doc, err := treeio.Decode(strings.NewReader(out), treeio.FormatJSON)
	if err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(doc.Roots) != 1 || len(doc.Roots[0].Children) != 1 || doc.Roots[0].Children[0].ID != "b" {
		t.Errorf("detached document = %+v", doc)
	}

	dst := filepath.Join(filepath.Dir(path), "kept.yaml")
	if _, err := execute(t, "detach", path, "r/a", "--keep", "-o", dst); err != nil {
		t.Fatalf("detach --keep: %v", err)
	}
	f, err := treeio.ImportFile(dst, treeio.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if roots := f.Roots(); len(roots) != 2 || roots[1].ID() != "a" || roots[1].Size() != 2 {
		t.Errorf("kept roots = %v", roots)
	}

	if _, err := execute(t, "detach", path, "r"); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("detach root err = %v, want INVALID_ARGUMENT", err)
	}
	if _, err := execute(t, "detach", path, "r/zz"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("detach r/zz err = %v, want NOT_FOUND", err)
	}

	conflict := filepath.Join(filepath.Dir(path), "conflict.yaml")
	if _, err := execute(t, "detach", path, "r/a", "-o", conflict, "-f", "json"); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("detach -o .yaml -f json err = %v, want INVALID_ARGUMENT", err)
	}
	if _, err := os.Stat(conflict); !os.IsNotExist(err) {
		t.Errorf("conflicting detach created %s", conflict)
	}
}

func TestDetachCommandCrossingLink(t *testing.T) {
	out, err := execute(t, "detach", sentenceFile(t), "s/np")
	if !stderrors.Is(err, treeio.ErrUnresolvedPath) {
		t.Errorf("detach across a link err = %v (out %q), want ErrUnresolvedPath", err, out)
	}

	dst := filepath.Join(t.TempDir(), "out.json")
	if _, err := execute(t, "detach", sentenceFile(t), "s/np", "-o", dst); !stderrors.Is(err, treeio.ErrUnresolvedPath) {
		t.Errorf("detach -o across a link err = %v, want ErrUnresolvedPath", err)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Errorf("failed detach left %s behind", dst)
	}
}

func TestConfigFlag(t *testing.T) {
	path := sentenceFile(t)
	cfg := writeFile(t, t.TempDir(), "birch.toml", "format = \"dot\"\nenumerator = \"rounded\"\n")

	out, err := execute(t, "--config", cfg, "show", path, "--root", "s/np")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "╰── w1") {
		t.Errorf("rounded enumerator from config not applied:\n%s", out)
	}

	out, err = execute(t, "--config", cfg, "render", path, "-o", "-")
	if err != nil || !strings.HasPrefix(out, "digraph G {") {
		t.Errorf("render with config format dot = %q, %v", out, err)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil || !strings.Contains(out, "birch") {
		t.Errorf("completion bash: %v", err)
	}
	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh should fail")
	}
}
