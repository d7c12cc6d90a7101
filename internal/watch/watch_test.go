package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRunReportsChangedTarget(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "r.json")
	other := filepath.Join(dir, "other.json")
	for _, p := range []string{target, other} {
		if err := os.WriteFile(p, []byte("{}"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	w, err := New([]string{target}, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got := make(chan []string, 1)
	done := errors.New("done")
	errc := make(chan error, 1)
	go func() {
		errc <- w.Run(ctx, func(changed []string) error {
			got <- changed
			return done
		})
	}()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(other, []byte("{\"a\":1}"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, []byte("{\"b\":2}"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case changed := <-got:
		abs, _ := filepath.Abs(target)
		if len(changed) != 1 || changed[0] != abs {
			t.Fatalf("want [%s], got %v", abs, changed)
		}
	case <-ctx.Done():
		t.Fatalf("no change reported")
	}
	if err := <-errc; !errors.Is(err, done) {
		t.Fatalf("want callback error, got %v", err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "r.json")
	if err := os.WriteFile(target, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	w, err := New([]string{target}, 0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Run(ctx, func([]string) error { return nil }); err != nil {
		t.Fatalf("run after cancel: %v", err)
	}
}

func TestNewMissingDirectory(t *testing.T) {
	if _, err := New([]string{filepath.Join(t.TempDir(), "nope", "r.json")}, 0); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
