package parawalk

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// buildFixture recreates the tree used throughout §8 of the contract
// this package implements:
//
//	test_dir/
//	  a.txt
//	  b.txt
//	  c.txt
//	  .hidden
//	  group 1/
//	    d.txt
//	  group 2/
//	    e.txt
//	    .hidden_file.txt
func buildFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := []string{"a.txt", "b.txt", "c.txt", ".hidden"}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(root, f), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(root, "group 1"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "group 1", "d.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(root, "group 2"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "group 2", "e.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "group 2", ".hidden_file.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

type observed struct {
	rel   string
	depth int
	err   bool
}

func collect(t *testing.T, root string, it *DirEntryIter) []observed {
	t.Helper()
	var out []observed
	for {
		res, ok := it.Next()
		if !ok {
			break
		}
		if !res.Ok() {
			out = append(out, observed{err: true})
			continue
		}
		rel, err := filepath.Rel(root, res.Value.Path())
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, observed{rel: filepath.ToSlash(rel), depth: res.Value.Depth})
	}
	return out
}

func expectS1() []observed {
	return []observed{
		{".", 0, false},
		{"a.txt", 1, false},
		{"b.txt", 1, false},
		{"c.txt", 1, false},
		{"group 1", 1, false},
		{"group 1/d.txt", 2, false},
		{"group 2", 1, false},
		{"group 2/e.txt", 2, false},
	}
}

func TestS1DefaultOrdering(t *testing.T) {
	root := buildFixture(t)
	for _, threads := range []int{0, 1, 2} {
		got := collect(t, root, New(root).Sort(SortName).NumThreads(threads).Iter())
		want := expectS1()
		if len(got) != len(want) {
			t.Fatalf("threads=%d: got %d entries, want %d: %+v", threads, len(got), len(want), got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("threads=%d: entry %d = %+v, want %+v", threads, i, got[i], want[i])
			}
		}
	}
}

func TestS2ShowHidden(t *testing.T) {
	root := buildFixture(t)
	got := collect(t, root, New(root).Sort(SortName).SkipHidden(false).Iter())
	found := false
	for _, e := range got {
		if e.rel == "group 2/.hidden_file.txt" && e.depth == 2 {
			found = true
		}
	}
	if !found {
		t.Fatalf("did not observe group 2/.hidden_file.txt: %+v", got)
	}
}

func TestS3MaxDepthOne(t *testing.T) {
	root := buildFixture(t)
	got := collect(t, root, New(root).Sort(SortName).MaxDepth(1).Iter())
	want := []observed{
		{".", 0, false},
		{"a.txt", 1, false},
		{"b.txt", 1, false},
		{"c.txt", 1, false},
		{"group 1", 1, false},
		{"group 2", 1, false},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestS4RootIsFile(t *testing.T) {
	root := buildFixture(t)
	filePath := filepath.Join(root, "a.txt")
	it := New(filePath).Iter()

	res, ok := it.Next()
	if !ok || !res.Ok() {
		t.Fatalf("expected one successful entry, got ok=%v res=%+v", ok, res)
	}
	if res.Value.FileName != filePath {
		t.Fatalf("file name = %q, want %q", res.Value.FileName, filePath)
	}
	if _, ok := it.Next(); ok {
		t.Fatal("expected walk to end after the single file entry")
	}
}

func TestS5ThreadCountsArePermutations(t *testing.T) {
	root := buildFixture(t)
	var baseline []observed
	for _, threads := range []int{1, 2, 0} {
		got := collect(t, root, New(root).NumThreads(threads).Iter())

		sorted := append([]observed(nil), got...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].rel < sorted[j].rel })

		if baseline == nil {
			baseline = sorted
		} else if len(sorted) != len(baseline) {
			t.Fatalf("threads=%d: %d entries, want %d", threads, len(sorted), len(baseline))
		} else {
			for i := range baseline {
				if sorted[i] != baseline[i] {
					t.Fatalf("threads=%d: multiset mismatch at %d: %+v vs %+v", threads, i, sorted[i], baseline[i])
				}
			}
		}

		index := make(map[string]int, len(got))
		for i, e := range got {
			index[e.rel] = i
		}
		for rel, i := range index {
			dir := filepath.Dir(rel)
			if dir == "." || dir == rel {
				continue
			}
			if parentIdx, ok := index[dir]; ok && parentIdx > i {
				t.Fatalf("threads=%d: parent %q observed after child %q", threads, dir, rel)
			}
		}
	}
}

func TestS6SuppressDescent(t *testing.T) {
	root := buildFixture(t)
	got := collect(t, root, New(root).Sort(SortName).ProcessEntries(func(entries []EntryResult) []EntryResult {
		for i := range entries {
			entries[i].Value.SetChildrenSpec(nil)
		}
		return entries
	}).Iter())

	for _, e := range got {
		if e.depth > 1 {
			t.Fatalf("expected no entries past depth 1, got %+v", e)
		}
	}
	if len(got) != 6 {
		t.Fatalf("got %d entries, want 6 (root + 5 direct children): %+v", len(got), got)
	}
}

func TestProcessEntriesCanDropEntries(t *testing.T) {
	root := buildFixture(t)
	got := collect(t, root, New(root).Sort(SortName).ProcessEntries(func(entries []EntryResult) []EntryResult {
		out := entries[:0]
		for _, e := range entries {
			if e.Ok() && e.Value.FileName == "b.txt" {
				continue
			}
			out = append(out, e)
		}
		return out
	}).Iter())

	for _, e := range got {
		if e.rel == "b.txt" {
			t.Fatalf("expected b.txt to be dropped by ProcessEntries, got %+v", got)
		}
	}
	if len(got) != len(expectS1())-1 {
		t.Fatalf("got %d entries, want %d: %+v", len(got), len(expectS1())-1, got)
	}
}

func TestProcessEntriesPanicIsRecoveredAsError(t *testing.T) {
	root := buildFixture(t)
	it := New(root).Sort(SortName).ProcessEntries(func(entries []EntryResult) []EntryResult {
		panic("boom")
	}).Iter()

	var sawError bool
	for {
		res, ok := it.Next()
		if !ok {
			break
		}
		if !res.Ok() {
			sawError = true
		}
	}
	if !sawError {
		t.Fatal("expected a panicking ProcessEntries to surface as an error entry")
	}
}

func TestMaxDepthZeroYieldsOnlyRoot(t *testing.T) {
	root := buildFixture(t)
	got := collect(t, root, New(root).MaxDepth(0).Iter())
	if len(got) != 1 || got[0].rel != "." || got[0].depth != 0 {
		t.Fatalf("got %+v, want exactly the root entry", got)
	}
}

func TestUnreadableDirectoryYieldsOneErrorAndContinues(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "locked"), 0o000); err != nil {
		t.Fatal(err)
	}
	defer os.Chmod(filepath.Join(root, "locked"), 0o755)
	if err := os.WriteFile(filepath.Join(root, "after.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	it := New(root).Sort(SortName).Iter()
	var sawError, sawAfter bool
	for {
		res, ok := it.Next()
		if !ok {
			break
		}
		if !res.Ok() {
			sawError = true
			continue
		}
		if res.Value.FileName == "after.txt" {
			sawAfter = true
		}
	}
	if os.Getuid() == 0 {
		t.Skip("running as root: permission bits do not block reads")
	}
	if !sawError {
		t.Fatal("expected an error entry for the unreadable directory")
	}
	if !sawAfter {
		t.Fatal("expected the walk to continue past the unreadable directory")
	}
}

func TestDepthInvariant(t *testing.T) {
	root := buildFixture(t)
	it := New(root).MaxDepth(2).Iter()
	for {
		res, ok := it.Next()
		if !ok {
			break
		}
		if res.Ok() && res.Value.Depth > 2 {
			t.Fatalf("entry %+v exceeds max depth 2", res.Value)
		}
	}
}

func TestHiddenInvariant(t *testing.T) {
	root := buildFixture(t)
	it := New(root).Iter() // SkipHidden defaults to true
	for {
		res, ok := it.Next()
		if !ok {
			break
		}
		if res.Ok() && len(res.Value.FileName) > 0 && res.Value.FileName[0] == '.' && res.Value.Depth > 0 {
			t.Fatalf("observed hidden entry %q despite default SkipHidden", res.Value.FileName)
		}
	}
}
