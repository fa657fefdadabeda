package filesystem

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(name), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestQueueQuietPeriod(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a")
	b := writeFile(t, dir, "b")

	start := time.Now()
	q := NewQueue(time.Second)
	for _, path := range []string{a, b} {
		if _, err := q.AddOrUpdate(path, start); err != nil {
			t.Fatal(err)
		}
	}

	if ready := q.Ready(start.Add(500 * time.Millisecond)); len(ready) != 0 {
		t.Errorf("no file was expected to be ready, actual %d", len(ready))
	}

	// b is still being written
	if _, err := q.AddOrUpdate(b, start.Add(800*time.Millisecond)); err != nil {
		t.Fatal(err)
	}

	ready := q.Ready(start.Add(time.Second))
	if len(ready) != 1 || ready[0].Path != a {
		t.Fatalf("expected only '%s' to be ready, actual %v", a, ready)
	}
	if ready[0].Info.Name() != "a" {
		t.Errorf("expected the file info of 'a', actual '%s'", ready[0].Info.Name())
	}
	if q.Len() != 1 {
		t.Errorf("expected one file left in the queue, actual %d", q.Len())
	}

	ready = q.Ready(start.Add(2 * time.Second))
	if len(ready) != 1 || ready[0].Path != b {
		t.Fatalf("expected '%s' to be ready, actual %v", b, ready)
	}
	if q.Len() != 0 {
		t.Errorf("the queue was supposed to be empty, actual %d", q.Len())
	}
}

func TestQueueIgnoresDirectoriesAndMissingFiles(t *testing.T) {
	dir := t.TempDir()
	q := NewQueue(0)
	now := time.Now()

	isDir, err := q.AddOrUpdate(dir, now)
	if err != nil || !isDir {
		t.Errorf("expected a directory, received %v, %v", isDir, err)
	}

	isDir, err = q.AddOrUpdate(filepath.Join(dir, "missing"), now)
	if err != nil || isDir {
		t.Errorf("a missing file must be ignored, received %v, %v", isDir, err)
	}

	if q.Len() != 0 {
		t.Errorf("the queue was supposed to be empty, actual %d", q.Len())
	}
}

func TestQueueRemove(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "file")
	q := NewQueue(0)
	now := time.Now()
	if _, err := q.AddOrUpdate(path, now); err != nil {
		t.Fatal(err)
	}
	q.Remove(path)
	if ready := q.Ready(now.Add(time.Hour)); len(ready) != 0 {
		t.Errorf("a removed file must not be returned, actual %v", ready)
	}
}
