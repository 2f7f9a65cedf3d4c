package inventory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSnapshotRoundTrip(t *testing.T) {
	store, err := NewSnapshotStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewSnapshotStore: %v", err)
	}

	exp := time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC)
	props := testProperties(50)
	props[0].LeaseExpiration = &exp
	props[0].ConstructionYear = 1998
	props[0].Agency = "GSA"

	id, err := store.Write(props)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if id == "" {
		t.Fatal("empty snapshot id")
	}

	got, err := store.Read(id)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != len(props) {
		t.Fatalf("got %d properties, want %d", len(got), len(props))
	}
	if got[0].ID != props[0].ID || got[0].Agency != "GSA" {
		t.Errorf("first record mismatch: %+v", got[0])
	}
	if got[0].LeaseExpiration == nil || !got[0].LeaseExpiration.Equal(exp) {
		t.Errorf("lease expiration = %v, want %v", got[0].LeaseExpiration, exp)
	}
	if got[0].ConstructionYear != 1998 {
		t.Errorf("construction year = %d, want 1998", got[0].ConstructionYear)
	}
}

func TestSnapshotLatest(t *testing.T) {
	store, err := NewSnapshotStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.Latest(); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Latest on empty dir: %v, want ErrNoSnapshot", err)
	}

	var last string
	for i := 0; i < 3; i++ {
		last, err = store.Write(testProperties(5))
		if err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	latest, err := store.Latest()
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest != last {
		t.Errorf("Latest = %s, want %s", latest, last)
	}
}

func TestSnapshotRejectsCorruption(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSnapshotStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	id, err := store.Write(testProperties(10))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	path := filepath.Join(dir, id+snapshotExt)

	t.Run("flipped payload byte", func(t *testing.T) {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		data[snapshotHeader+3] ^= 0xFF
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := store.Read(id); !errors.Is(err, ErrCorruptSnapshot) {
			t.Errorf("Read corrupt payload: %v, want ErrCorruptSnapshot", err)
		}
		data[snapshotHeader+3] ^= 0xFF // restore
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("bad magic", func(t *testing.T) {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		bad := append([]byte("XXXX"), data[4:]...)
		if err := os.WriteFile(path, bad, 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := store.Read(id); !errors.Is(err, ErrCorruptSnapshot) {
			t.Errorf("Read bad magic: %v, want ErrCorruptSnapshot", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("truncated", func(t *testing.T) {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, data[:snapshotHeader-2], 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := store.Read(id); !errors.Is(err, ErrCorruptSnapshot) {
			t.Errorf("Read truncated: %v, want ErrCorruptSnapshot", err)
		}
	})
}

func TestSnapshotReadMissing(t *testing.T) {
	store, err := NewSnapshotStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Read("nope"); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Read missing: %v, want ErrNoSnapshot", err)
	}
}

func TestSnapshotPrune(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSnapshotStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	var last string
	for i := 0; i < 5; i++ {
		last, err = store.Write(testProperties(3))
		if err != nil {
			t.Fatal(err)
		}
	}

	if err := store.Prune(2); err != nil {
		t.Fatalf("Prune: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d snapshots after prune, want 2", len(entries))
	}

	// The newest snapshot must survive.
	latest, err := store.Latest()
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest != last {
		t.Errorf("Latest = %s after prune, want %s", latest, last)
	}
}

func TestSnapshotStoreAsLoader(t *testing.T) {
	store, err := NewSnapshotStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.Load(context.Background()); err == nil {
		t.Error("Load on empty store should fail")
	} else {
		var loadErr *LoadError
		if !errors.As(err, &loadErr) || loadErr.Source != "snapshot" {
			t.Errorf("error = %v, want LoadError from snapshot", err)
		}
		if !errors.Is(err, ErrNoSnapshot) {
			t.Errorf("error = %v, should wrap ErrNoSnapshot", err)
		}
	}

	if _, err := store.Write(testProperties(7)); err != nil {
		t.Fatal(err)
	}
	props, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(props) != 7 {
		t.Errorf("loaded %d properties, want 7", len(props))
	}
}
