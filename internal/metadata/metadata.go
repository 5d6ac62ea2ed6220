// Package metadata reports existence, type and recursive size of filesystem paths.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrFilesystem is wrapped by every error caused by a failed stat or directory listing.
var ErrFilesystem = errors.New("filesystem error")

// Result describes a single path.
type Result struct {
	// Size is the byte length of a file, or the total of all regular files below a directory.
	Size uint64 `json:"size"`

	// IsDir reports whether the path is a directory.
	IsDir bool `json:"is_dir"`

	// IsFile reports whether the path is a regular file.
	IsFile bool `json:"is_file"`

	// IsExist reports whether the path exists. When false every other field is zero.
	IsExist bool `json:"is_exist"`
}

// FileSystem is the read-only view of the filesystem used for metadata lookups.
type FileSystem interface {
	// Stat returns info for name, following symbolic links.
	Stat(name string) (fs.FileInfo, error)

	// ReadDir lists the immediate entries of the directory name.
	ReadDir(name string) ([]fs.DirEntry, error)
}

type osFileSystem struct{}

func (osFileSystem) Stat(name string) (fs.FileInfo, error)      { return os.Stat(name) }
func (osFileSystem) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }

// OS is the FileSystem backed by the host operating system.
var OS FileSystem = osFileSystem{}

// Service answers metadata queries against a FileSystem.
type Service struct {
	fsys FileSystem
}

// NewService creates a Service. A nil fsys uses OS.
func NewService(fsys FileSystem) *Service {
	if fsys == nil {
		fsys = OS
	}
	return &Service{fsys: fsys}
}

// Exists reports whether path can be statted. Any stat failure, permission
// denied included, counts as non-existence.
func (s *Service) Exists(path string) bool {
	_, err := s.fsys.Stat(path)
	return err == nil
}

// Metadata returns the Result for path. A missing path is not an error.
func (s *Service) Metadata(ctx context.Context, path string) (Result, error) {
	if !s.Exists(path) {
		return Result{}, nil
	}

	info, err := s.fsys.Stat(path)
	if err != nil {
		return Result{}, wrapErr("stat", path, err)
	}

	result := Result{IsExist: true}

	switch mode := info.Mode(); {
	case mode.IsRegular():
		result.IsFile = true
		result.Size = uint64(info.Size())
	case mode.IsDir():
		size, err := DirSize(ctx, s.fsys, path)
		if err != nil {
			return Result{}, err
		}
		result.IsDir = true
		result.Size = size
	}

	return result, nil
}

// Lookup is Metadata against the host filesystem.
func Lookup(ctx context.Context, path string) (Result, error) {
	return NewService(OS).Metadata(ctx, path)
}

func wrapErr(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrFilesystem, op, path, err)
}
