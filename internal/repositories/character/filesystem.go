package character

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KirkDiggler/rpg-sheets/internal/entities"
	"github.com/KirkDiggler/rpg-sheets/internal/errors"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// FilesystemConfig contains configuration for the filesystem character repository.
type FilesystemConfig struct {
	// BasePath holds one directory per category partition
	BasePath string
}

// Validate validates the FilesystemConfig.
func (cfg *FilesystemConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("BasePath", cfg.BasePath, vb)
	return vb.Build()
}

type filesystemRepository struct {
	basePath string
}

// NewFilesystem creates a filesystem-backed character repository, creating
// the partition directories under BasePath.
func NewFilesystem(cfg *FilesystemConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	for _, category := range entities.Categories() {
		dir := filepath.Join(cfg.BasePath, category.Partition())
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return nil, errors.Wrapf(err, "failed to create partition %s", dir)
		}
	}

	return &filesystemRepository{basePath: cfg.BasePath}, nil
}

func (r *filesystemRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	stored, key, err := prepareSave(input)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(stored, "", "    ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal character")
	}

	path := r.recordPath(stored.Type, key)
	if err := writeFileAtomic(path, data); err != nil {
		return nil, errors.Wrapf(err, "failed to write %s", path)
	}

	slog.DebugContext(ctx, "character saved",
		"backend", "filesystem",
		"category", stored.Type,
		"key", key)

	return &SaveOutput{Character: stored, Key: key}, nil
}

func (r *filesystemRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	key, err := validateSelector(input.Category, input.Name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.recordPath(input.Category, key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NotFoundf("character %s not found", key).
				WithMeta("category", string(input.Category))
		}
		return nil, errors.Wrapf(err, "failed to read character %s", key)
	}

	c, err := decodeDocument(data, input.Category)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Character: c}, nil
}

func (r *filesystemRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	key, err := validateSelector(input.Category, input.Name)
	if err != nil {
		return nil, err
	}

	if err := os.Remove(r.recordPath(input.Category, key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NotFoundf("character %s not found", key).
				WithMeta("category", string(input.Category))
		}
		return nil, errors.Wrapf(err, "failed to delete character %s", key)
	}

	slog.DebugContext(ctx, "character deleted",
		"backend", "filesystem",
		"category", input.Category,
		"key", key)

	return &DeleteOutput{}, nil
}

func (r *filesystemRepository) List(_ context.Context, input ListInput) (*ListOutput, error) {
	if err := validateCategory(input.Category); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(r.basePath, input.Category.Partition()))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ListOutput{Names: []string{}}, nil
		}
		return nil, errors.Wrapf(err, "failed to list %s", input.Category)
	}

	suffix := fmt.Sprintf("-%s.json", input.Category)
	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(entry.Name(), suffix))
	}
	sort.Strings(keys)

	names := make([]string, len(keys))
	for i, key := range keys {
		names[i] = entities.NameFromKey(key)
	}
	return &ListOutput{Names: names}, nil
}

func (r *filesystemRepository) recordPath(category entities.Category, key string) string {
	return filepath.Join(r.basePath, category.Partition(), fmt.Sprintf("%s-%s.json", key, category))
}

// writeFileAtomic writes through a temp file in the same directory so a
// crash never leaves a truncated record.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, dirPerm)
}
