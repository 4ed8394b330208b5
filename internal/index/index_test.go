package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parawalk/parawalk"
)

func buildFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "sub", "b.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestIngestAndLoadChildren(t *testing.T) {
	root := buildFixture(t)

	db, err := Open()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	it := parawalk.New(root).Sort(parawalk.SortName).PreloadMetadata(true).Iter()
	count, err := Ingest(db, it)
	if err != nil {
		t.Fatal(err)
	}
	if count != 4 { // root, a.txt, sub, sub/b.txt
		t.Fatalf("ingested %d rows, want 4", count)
	}

	children, err := LoadChildren(db, root, "name", 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(children) != 2 {
		t.Fatalf("got %d children of root, want 2: %+v", len(children), children)
	}
	if children[0].Name != "a.txt" || children[1].Name != "sub" {
		t.Fatalf("unexpected order: %+v", children)
	}
	if children[1].Kind != KindDir {
		t.Fatalf("sub should be KindDir, got %v", children[1].Kind)
	}
}

func TestIngestKeepsEveryErrorRow(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"locked1", "locked2", "locked3"} {
		if err := os.Mkdir(filepath.Join(root, name), 0o000); err != nil {
			t.Fatal(err)
		}
		defer os.Chmod(filepath.Join(root, name), 0o755)
	}
	if os.Getuid() == 0 {
		t.Skip("running as root: permission bits do not block reads")
	}

	db, err := Open()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	it := parawalk.New(root).Sort(parawalk.SortName).Iter()
	count, err := Ingest(db, it)
	if err != nil {
		t.Fatal(err)
	}

	var errRows int64
	if err := db.QueryRow(`SELECT COUNT(*) FROM entries WHERE kind = ?`, int(KindError)).Scan(&errRows); err != nil {
		t.Fatal(err)
	}
	if errRows != 3 {
		t.Fatalf("ingested %d error rows (of %d total), want 3 — each must get its own row instead of overwriting the last", errRows, count)
	}
}
