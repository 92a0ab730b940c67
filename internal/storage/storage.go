// Package storage keeps the task collection as one named record holding a
// JSON array. The record is always read and written whole.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cosmic/internal/task"
)

// RecordName is the key of the task collection record.
const RecordName = "cosmicTasks"

var (
	ErrNotFound  = errors.New("record not found")
	ErrMalformed = errors.New("record malformed")
)

// Backend stores opaque named records.
type Backend interface {
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
	// UpdatedAt reports when the record was last written.
	UpdatedAt(name string) (time.Time, error)
	Close() error
}

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Open returns the backend of the given kind. path is the database file for
// sqlite and the data directory for file.
func Open(kind, path string) (Backend, error) {
	switch kind {
	case BackendSQLite, "":
		return OpenSQLite(path)
	case BackendFile:
		return OpenFile(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}

// Repository adapts a Backend to task.Repository.
type Repository struct {
	backend Backend
	name    string
}

func NewRepository(b Backend, name string) *Repository {
	if name == "" {
		name = RecordName
	}
	return &Repository{backend: b, name: name}
}

// Load returns an empty collection when the record does not exist yet.
func (r *Repository) Load() ([]task.Task, error) {
	data, err := r.backend.Read(r.name)
	if errors.Is(err, ErrNotFound) {
		return []task.Task{}, nil
	}
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

func (r *Repository) Save(tasks []task.Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return err
	}
	return r.backend.Write(r.name, data)
}

// UpdatedAt reports when the task collection was last saved.
func (r *Repository) UpdatedAt() (time.Time, error) {
	return r.backend.UpdatedAt(r.name)
}

func (r *Repository) Close() error {
	return r.backend.Close()
}

func Encode(tasks []task.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return data, nil
}

func Decode(data []byte) ([]task.Task, error) {
	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, nil
}
