package plan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestLayout(t *testing.T) Layout {
	t.Helper()
	return Layout{Root: t.TempDir(), Output: "build"}
}

func writeFile(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}

func TestLayoutPaths(t *testing.T) {
	l := Layout{Root: "/src", Output: "build"}

	img := &Target{Name: "base_image.sif", Kind: KindImage, Source: "base_image.def"}
	env := &Target{Name: "ubuntu20--code-server", Kind: KindEnvironment, Source: "ubuntu20/code-server.def"}

	if got, want := l.OutputPath(img), filepath.Join("/src", "build", "base_image.sif"); got != want {
		t.Fatalf("OutputPath = %q, want %q", got, want)
	}
	if got, want := l.SourceFile(env), filepath.Join("/src", "ubuntu20", "code-server.def"); got != want {
		t.Fatalf("SourceFile = %q, want %q", got, want)
	}
	if got, want := l.MarkerPath(env), filepath.Join("/src", "build", "ubuntu20--code-server.marker"); got != want {
		t.Fatalf("MarkerPath = %q, want %q", got, want)
	}

	// Image targets stamp on the artifact itself, environments on the marker.
	if got := l.StampPath(img); got != l.OutputPath(img) {
		t.Fatalf("image StampPath = %q, want %q", got, l.OutputPath(img))
	}
	if got := l.StampPath(env); got != l.MarkerPath(env) {
		t.Fatalf("env StampPath = %q, want %q", got, l.MarkerPath(env))
	}
}

func TestStaleMissingStamp(t *testing.T) {
	l := newTestLayout(t)
	tgt := &Target{Name: "code-server", Kind: KindEnvironment, Source: "code-server.def"}

	writeFile(t, l.SourceFile(tgt), time.Now())

	stale, err := l.Stale(tgt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stale {
		t.Fatal("target with no stamp should be stale")
	}
}

func TestStaleOldStamp(t *testing.T) {
	l := newTestLayout(t)
	tgt := &Target{Name: "code-server", Kind: KindEnvironment, Source: "code-server.def"}

	now := time.Now()
	writeFile(t, l.SourceFile(tgt), now)
	writeFile(t, l.MarkerPath(tgt), now.Add(-time.Hour))

	stale, err := l.Stale(tgt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stale {
		t.Fatal("target older than its source should be stale")
	}
}

func TestStaleFreshStamp(t *testing.T) {
	l := newTestLayout(t)
	tgt := &Target{Name: "base_image.sif", Kind: KindImage, Source: "base_image.def"}

	now := time.Now()
	writeFile(t, l.SourceFile(tgt), now.Add(-time.Hour))
	writeFile(t, l.OutputPath(tgt), now)

	stale, err := l.Stale(tgt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stale {
		t.Fatal("target newer than its source should not be stale")
	}
}

func TestStaleMissingSource(t *testing.T) {
	l := newTestLayout(t)
	tgt := &Target{Name: "ghost", Kind: KindEnvironment, Source: "ghost.def"}

	_, err := l.Stale(tgt)
	if !errors.Is(err, ErrMissingSource) {
		t.Fatalf("err = %v, want ErrMissingSource", err)
	}
}
