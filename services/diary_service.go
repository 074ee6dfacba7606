package services

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/PleasantH/NutriPal-Chatbot/models"
)

// DiaryStore keeps one JSON file per owner under dir. Appends are
// full-read/full-write; a per-owner mutex serializes the interactive
// path against the scheduled summary job so updates are never lost.
type DiaryStore struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	now func() time.Time
}

// EntryInput is what the caller supplies; the store assigns timestamp,
// date and owner.
type EntryInput struct {
	MealType    string `json:"meal_type"`
	Description string `json:"description"`
	Water       int    `json:"water"`
}

func NewDiaryStore(dir string) (*DiaryStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &models.StorageError{Op: "init", Owner: "", Err: err}
	}
	return &DiaryStore{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
		now:   time.Now,
	}, nil
}

func (s *DiaryStore) ownerLock(ownerID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[ownerID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[ownerID] = l
	}
	return l
}

// sanitizeOwner maps an owner id (usually an email address) to a safe
// file name. Anything outside [A-Za-z0-9.@_-] becomes '_', and '@' is
// kept readable as "_at_". The substitutions are lossy, so a short
// digest of the raw id is appended to keep distinct owners in
// distinct files.
func sanitizeOwner(ownerID string) string {
	var b strings.Builder
	for _, r := range ownerID {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == '@':
			b.WriteString("_at_")
		default:
			b.WriteRune('_')
		}
	}
	sum := sha256.Sum256([]byte(ownerID))
	return fmt.Sprintf("%s-%x", b.String(), sum[:4])
}

func (s *DiaryStore) path(ownerID string) string {
	return filepath.Join(s.dir, sanitizeOwner(ownerID)+".json")
}

func (s *DiaryStore) readFile(ownerID string) (models.DiaryFile, error) {
	df := models.DiaryFile{Version: models.DiarySchemaVersion, Owner: ownerID}
	raw, err := os.ReadFile(s.path(ownerID))
	if errors.Is(err, os.ErrNotExist) {
		return df, nil // created lazily on first append
	}
	if err != nil {
		return df, &models.StorageError{Op: "read", Owner: ownerID, Err: err}
	}
	if err := json.Unmarshal(raw, &df); err != nil {
		return df, &models.StorageError{Op: "decode", Owner: ownerID, Err: err}
	}
	return df, nil
}

func (s *DiaryStore) writeFile(ownerID string, df models.DiaryFile) error {
	raw, err := json.MarshalIndent(df, "", "  ")
	if err != nil {
		return &models.StorageError{Op: "encode", Owner: ownerID, Err: err}
	}
	tmp, err := os.CreateTemp(s.dir, ".diary-*")
	if err != nil {
		return &models.StorageError{Op: "write", Owner: ownerID, Err: err}
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return &models.StorageError{Op: "write", Owner: ownerID, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return &models.StorageError{Op: "write", Owner: ownerID, Err: err}
	}
	if err := os.Rename(tmp.Name(), s.path(ownerID)); err != nil {
		os.Remove(tmp.Name())
		return &models.StorageError{Op: "write", Owner: ownerID, Err: err}
	}
	return nil
}

// Append validates the input, stamps a LogEntry with the current time
// and writes the owner's whole file back. Returns the stored entry.
func (s *DiaryStore) Append(ownerID string, in EntryInput) (models.LogEntry, error) {
	if ownerID == "" {
		return models.LogEntry{}, &models.InvalidEntryError{Field: "owner_id", Reason: "missing"}
	}
	entry := models.NewLogEntry(ownerID, in.MealType, in.Description, in.Water, s.now())
	if err := entry.Validate(); err != nil {
		return models.LogEntry{}, err
	}

	l := s.ownerLock(ownerID)
	l.Lock()
	defer l.Unlock()

	df, err := s.readFile(ownerID)
	if err != nil {
		return models.LogEntry{}, err
	}
	df.Logs = append(df.Logs, entry)
	if err := s.writeFile(ownerID, df); err != nil {
		return models.LogEntry{}, err
	}
	return entry, nil
}

// LoadAll returns the owner's history in storage order, empty if the
// owner has never logged.
func (s *DiaryStore) LoadAll(ownerID string) ([]models.LogEntry, error) {
	l := s.ownerLock(ownerID)
	l.Lock()
	defer l.Unlock()

	df, err := s.readFile(ownerID)
	if err != nil {
		return nil, err
	}
	return df.Logs, nil
}

// Owners lists every owner with a persisted diary, for the daily job.
func (s *DiaryStore) Owners() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, &models.StorageError{Op: "list", Owner: "", Err: err}
	}
	owners := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			return nil, &models.StorageError{Op: "list", Owner: e.Name(), Err: err}
		}
		var df models.DiaryFile
		if err := json.Unmarshal(raw, &df); err != nil || df.Owner == "" {
			continue // not a diary file
		}
		owners = append(owners, df.Owner)
	}
	return owners, nil
}
