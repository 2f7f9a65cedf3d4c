package inventory

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/golang/snappy"
	"github.com/google/uuid"
	"golang.org/x/exp/mmap"

	"github.com/hbracken/fedlease/pkg/property"
)

// Snapshot file format:
//
//	[magic:4 "FPSN"][version:1][compLen:8][checksum:4][compressed JSON payload]
//
// The checksum covers the compressed payload.
const (
	snapshotMagic   = "FPSN"
	snapshotVersion = 1
	snapshotExt     = ".snap"
	snapshotHeader  = 4 + 1 + 8 + 4
)

// SnapshotStore persists property datasets as snappy-compressed snapshots
// and reads them back through a memory map. The store is the fast startup
// path: load yesterday's snapshot, then refresh from the live source in
// the background.
type SnapshotStore struct {
	dir string
}

// NewSnapshotStore creates the snapshot directory if needed.
func NewSnapshotStore(dir string) (*SnapshotStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("snapshot dir: %w", err)
	}
	return &SnapshotStore{dir: dir}, nil
}

// Write persists the dataset and returns the new snapshot's ID. The write
// goes through a temp file and rename so a crash never leaves a partial
// snapshot with the final name.
func (s *SnapshotStore) Write(props []*property.FederalProperty) (string, error) {
	payload, err := json.Marshal(props)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	compressed := snappy.Encode(nil, payload)

	header := make([]byte, snapshotHeader)
	copy(header[0:4], snapshotMagic)
	header[4] = snapshotVersion
	binary.BigEndian.PutUint64(header[5:13], uint64(len(compressed)))
	binary.BigEndian.PutUint32(header[13:17], crc32.ChecksumIEEE(compressed))

	id := newSnapshotID()
	final := filepath.Join(s.dir, id+snapshotExt)
	tmp := final + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("create snapshot: %w", err)
	}
	if _, err := f.Write(header); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("write snapshot header: %w", err)
	}
	if _, err := f.Write(compressed); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("write snapshot payload: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("sync snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("finalize snapshot: %w", err)
	}
	return id, nil
}

// Read loads one snapshot by ID, verifying magic, version and checksum.
func (s *SnapshotStore) Read(id string) ([]*property.FederalProperty, error) {
	path := filepath.Join(s.dir, id+snapshotExt)
	reader, err := mmap.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer reader.Close()

	if reader.Len() < snapshotHeader {
		return nil, fmt.Errorf("%w: truncated header", ErrCorruptSnapshot)
	}

	header := make([]byte, snapshotHeader)
	if _, err := reader.ReadAt(header, 0); err != nil {
		return nil, fmt.Errorf("read snapshot header: %w", err)
	}
	if string(header[0:4]) != snapshotMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrCorruptSnapshot)
	}
	if header[4] != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptSnapshot, header[4])
	}

	compLen := binary.BigEndian.Uint64(header[5:13])
	checksum := binary.BigEndian.Uint32(header[13:17])
	if uint64(reader.Len()-snapshotHeader) != compLen {
		return nil, fmt.Errorf("%w: payload length mismatch", ErrCorruptSnapshot)
	}

	compressed := make([]byte, compLen)
	if _, err := reader.ReadAt(compressed, snapshotHeader); err != nil {
		return nil, fmt.Errorf("read snapshot payload: %w", err)
	}
	if crc32.ChecksumIEEE(compressed) != checksum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorruptSnapshot)
	}

	payload, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	var props []*property.FederalProperty
	if err := json.Unmarshal(payload, &props); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return props, nil
}

// Latest returns the most recent snapshot ID, or ErrNoSnapshot.
func (s *SnapshotStore) Latest() (string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("list snapshots: %w", err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), snapshotExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), snapshotExt))
	}
	if len(ids) == 0 {
		return "", ErrNoSnapshot
	}
	// IDs are timestamp-prefixed so lexical order is chronological.
	sort.Strings(ids)
	return ids[len(ids)-1], nil
}

// Prune removes all but the newest keep snapshots.
func (s *SnapshotStore) Prune(keep int) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), snapshotExt) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	if len(names) <= keep {
		return nil
	}
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			return fmt.Errorf("prune snapshot %s: %w", name, err)
		}
	}
	return nil
}

// Load implements Loader by reading the latest snapshot.
func (s *SnapshotStore) Load(ctx context.Context) ([]*property.FederalProperty, error) {
	id, err := s.Latest()
	if err != nil {
		return nil, &LoadError{Source: "snapshot", Err: err}
	}
	props, err := s.Read(id)
	if err != nil {
		return nil, &LoadError{Source: "snapshot", Err: err}
	}
	return props, nil
}

// newSnapshotID is timestamp-prefixed at nanosecond precision so lexical
// order matches write order even for rapid successive snapshots.
func newSnapshotID() string {
	return time.Now().UTC().Format("20060102T150405.000000000") + "-" + uuid.NewString()
}
