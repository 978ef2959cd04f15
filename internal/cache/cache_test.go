package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oasis-klondike/klondike-solver/internal/move"
	"github.com/oasis-klondike/klondike-solver/internal/solver"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "cache-db")
	c, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestKeyIsDeterministicAndDistinguishesInputs(t *testing.T) {
	a := Key("default", 1, 3)
	b := Key("default", 1, 3)
	if a != b {
		t.Fatalf("Key should be a pure function of its inputs")
	}
	if Key("default", 1, 3) == Key("default", 2, 3) {
		t.Fatalf("different seeds should not collide")
	}
	if Key("default", 1, 3) == Key("legacy", 1, 3) {
		t.Fatalf("different strategies should not collide")
	}
}

func TestPutThenGetRoundTrips(t *testing.T) {
	c := openTestCache(t)
	k := Key("default", 42, 3)

	want := Entry{
		Result: solver.Solved,
		History: []move.Move{
			{Kind: move.DeckStack},
		},
	}
	if err := c.Put(k, want); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, found, err := c.Get(k)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found {
		t.Fatalf("expected Get to find the entry just Put")
	}
	if got.Result != want.Result || len(got.History) != len(want.History) {
		t.Fatalf("round-tripped entry mismatch: got %+v, want %+v", got, want)
	}
}

func TestGetMissingKeyReportsNotFound(t *testing.T) {
	c := openTestCache(t)
	_, found, err := c.Get(Key("default", 999, 1))
	if err != nil {
		t.Fatalf("Get on a missing key should not error: %v", err)
	}
	if found {
		t.Fatalf("Get on a never-Put key should report not found")
	}
}

func TestOpenCreatesDatabaseDirectory(t *testing.T) {
	dir := filepath.Join(os.TempDir(), "lonecli-cache-create-test")
	defer os.RemoveAll(dir)
	c, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer c.Close()
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected Open to create %s: %v", dir, err)
	}
}
