package persistence

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"github.com/launchpad-ops/tfscaffold/internal/types"
)

// WriteFileAtomic writes data to a temp file in the target directory and renames it into place,
// so readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Service defines project record persistence operations
type Service interface {
	Load() (*types.ProjectRecord, error)
	Save(record *types.ProjectRecord) error
	GetFilePath() string
}

// FileService keeps the project record as YAML under <projectDir>/.tfscaffold/.
type FileService struct {
	filePath string
}

func NewFileService(projectDir string) *FileService {
	return &FileService{
		filePath: filepath.Join(projectDir, types.RecordDirName, types.RecordFileName),
	}
}

func (s *FileService) GetFilePath() string {
	return s.filePath
}

func (s *FileService) Load() (*types.ProjectRecord, error) {
	data, err := os.ReadFile(s.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w at %s: run create-project first", types.ErrRecordNotFound, s.filePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read project record: %w", err)
	}

	var record types.ProjectRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal project record: %w", err)
	}
	if record.ProjectName == "" || record.ProviderID == "" {
		return nil, fmt.Errorf("project record %s is incomplete", s.filePath)
	}

	return &record, nil
}

// Save persists the record atomically. An empty ID is replaced with the ID of the record already
// on disk, or a fresh one, so regenerating a project keeps its identity.
func (s *FileService) Save(record *types.ProjectRecord) error {
	if record.ID == "" {
		record.ID = s.existingID()
	}

	data, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal project record: %w", err)
	}

	if err := WriteFileAtomic(s.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to save project record: %w", err)
	}

	return nil
}

func (s *FileService) existingID() string {
	if existing, err := s.Load(); err == nil && existing.ID != "" {
		return existing.ID
	}
	return uuid.NewString()
}
