package dedup

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go-superset-notifier/internal/models"
)

// MarkerStore persists the identifier of the last dispatched job.
type MarkerStore interface {
	Load() (string, error)
	Save(id string) error
}

type marker struct {
	LastJobID string `json:"lastJobId"`
}

// FileStore keeps the marker as a small JSON document on disk.
type FileStore struct {
	filePath string
}

func NewFileStore(filePath string) *FileStore {
	return &FileStore{filePath: filePath}
}

func (fs *FileStore) Path() string {
	return fs.filePath
}

// Load returns "" and no error when the file does not exist yet.
func (fs *FileStore) Load() (string, error) {
	data, err := os.ReadFile(fs.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", fs.filePath, err)
	}

	var m marker
	if err := json.Unmarshal(data, &m); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", fs.filePath, err)
	}
	return m.LastJobID, nil
}

// Save rewrites the whole file. It writes a temp file and renames it so a crash
// never leaves a half-written marker behind.
func (fs *FileStore) Save(id string) error {
	data, err := json.Marshal(marker{LastJobID: id})
	if err != nil {
		return fmt.Errorf("failed to marshal marker: %w", err)
	}

	dir := filepath.Dir(fs.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create marker directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(fs.filePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp marker: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp marker: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp marker: %w", err)
	}
	if err := os.Rename(tmp.Name(), fs.filePath); err != nil {
		return fmt.Errorf("failed to replace %s: %w", fs.filePath, err)
	}
	return nil
}

// MemoryStore is an in-process MarkerStore.
type MemoryStore struct {
	mu     sync.Mutex
	lastID string
	writes int
}

func NewMemoryStore(initial string) *MemoryStore {
	return &MemoryStore{lastID: initial}
}

func (ms *MemoryStore) Load() (string, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.lastID, nil
}

func (ms *MemoryStore) Save(id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.lastID = id
	ms.writes++
	return nil
}

// Writes reports how many times Save was called.
func (ms *MemoryStore) Writes() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.writes
}

// JobID is the dedup key: lowercase "Company-Role-CTC".
func JobID(rec models.JobRecord) string {
	return strings.ToLower(rec.Company + "-" + rec.Role + "-" + rec.CTC)
}

// Decision is the gate's verdict for one record.
type Decision struct {
	ID        string
	PriorID   string
	Duplicate bool
}

// Gate compares records against the persisted marker.
type Gate struct {
	store MarkerStore
}

func NewGate(store MarkerStore) *Gate {
	return &Gate{store: store}
}

// Check never fails on a bad marker: an unreadable store counts as "nothing seen yet".
func (g *Gate) Check(rec models.JobRecord) Decision {
	prior, err := g.store.Load()
	if err != nil {
		log.Printf("⚠️ Could not read last job marker: %v", err)
		prior = ""
	} else if prior != "" {
		log.Printf("📁 lastJobId: %s", prior)
	}

	id := JobID(rec)
	return Decision{
		ID:        id,
		PriorID:   prior,
		Duplicate: id == prior,
	}
}

// Commit persists d.ID as the new marker. Duplicates are never rewritten.
func (g *Gate) Commit(d Decision) error {
	if d.Duplicate {
		return nil
	}
	if err := g.store.Save(d.ID); err != nil {
		return fmt.Errorf("failed to persist last job marker: %w", err)
	}
	return nil
}
