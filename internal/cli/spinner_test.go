package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/birchtree/birch/pkg/observability"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRenderMessage(t *testing.T) {
	tests := []struct {
		formats []string
		nodes   int
		want    string
	}{
		{[]string{"svg"}, 1, "Rendering 1 node as svg..."},
		{[]string{"dot", "json"}, 6, "Rendering 6 nodes as dot, json..."},
		{[]string{"txt"}, 0, "Rendering 0 nodes as txt..."},
	}
	for _, tt := range tests {
		if got := renderMessage(tt.formats, tt.nodes); got != tt.want {
			t.Errorf("renderMessage(%v, %d) = %q, want %q", tt.formats, tt.nodes, got, tt.want)
		}
	}
}

func TestSpinnerWritesMessage(t *testing.T) {
	var buf syncBuffer
	s := newSpinner(context.Background(), &buf, renderMessage([]string{"svg", "png"}, 5))
	s.Start()
	s.Stop()

	if out := buf.String(); !strings.Contains(out, "Rendering 5 nodes as svg, png...") {
		t.Errorf("spinner output = %q", out)
	}
	if s.Cancelled() {
		t.Error("Stop should not report cancellation")
	}
}

func TestSpinnerStopResults(t *testing.T) {
	tests := []struct {
		name string
		stop func(*Spinner)
		want string
	}{
		{"Success", func(s *Spinner) { s.StopWithSuccess("Rendered sentence.svg") }, "Rendered sentence.svg"},
		{"Error", func(s *Spinner) { s.StopWithError("Render failed") }, "Render failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf syncBuffer
			s := newSpinner(context.Background(), &buf, "Rendering...")
			s.Start()
			tt.stop(s)
			if out := buf.String(); !strings.HasSuffix(strings.TrimSpace(out), tt.want) {
				t.Errorf("output = %q, want suffix %q", out, tt.want)
			}
		})
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var buf syncBuffer
	s := newSpinner(context.Background(), &buf, "Rendering...")
	s.Start()
	s.Stop()
	s.Stop()

	// Stop before Start must not block.
	newSpinner(context.Background(), &buf, "idle").Stop()
}

func TestSpinnerCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var buf syncBuffer
	s := newSpinner(ctx, &buf, "Rendering...")
	s.Start()
	<-ctx.Done()
	s.Stop()

	if !s.Cancelled() {
		t.Error("spinner should report cancellation after its context ended")
	}
}

func TestRenderCommandReportsProgress(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(observability.Reset)
	path := sentenceFile(t)

	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	var out, errOut syncBuffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"render", path, "-f", "txt", "-o", "-"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render: %v", err)
	}

	if got := errOut.String(); !strings.Contains(got, "as txt...") {
		t.Errorf("stderr = %q, want render progress", got)
	}
	if strings.Contains(out.String(), "Rendering") {
		t.Errorf("progress leaked into stdout: %q", out.String())
	}
}
