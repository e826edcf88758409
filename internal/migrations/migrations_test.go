package migrations

import (
	"io/fs"
	"testing"
)

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(FS, Dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}

	want := []string{"00001_init.go", "00002_runs_fetched_at_index.go"}
	if len(entries) != len(want) {
		t.Fatalf("embedded %d files, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Name() != want[i] {
			t.Errorf("entry %d = %s, want %s", i, e.Name(), want[i])
		}
	}
}
