// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package store

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 💥 IOError is returned for every failed file access.
// It unwraps to the underlying os error.
type IOError struct {
	Op   string // read, write, backup, resolve
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// 🔧 Store reads and writes files relative to a base directory
type Store struct {
	baseDir string
}

// 🏭 New creates a store rooted at baseDir
func New(baseDir string) *Store {
	return &Store{
		baseDir: filepath.Clean(baseDir),
	}
}

// 🔒 getAbsPath returns the absolute path for a given relative path
func (s *Store) getAbsPath(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(s.baseDir, path)
}

// 🎯 Resolve turns a target into a single path. Targets without glob
// metacharacters are returned as they are; patterns must match exactly one file.
func (s *Store) Resolve(ctx context.Context, target string) (string, error) {
	if !strings.ContainsAny(target, "*?[{") {
		return target, nil
	}

	if !doublestar.ValidatePattern(filepath.ToSlash(target)) {
		return "", &IOError{Op: "resolve", Path: target, Err: errors.New("invalid glob pattern")}
	}

	matches, err := doublestar.Glob(os.DirFS(s.baseDir), filepath.ToSlash(target), doublestar.WithFilesOnly())
	if err != nil {
		return "", &IOError{Op: "resolve", Path: target, Err: err}
	}

	zerolog.Ctx(ctx).Debug().Str("pattern", target).Strs("matches", matches).Msg("resolved target pattern")

	switch len(matches) {
	case 1:
		return filepath.FromSlash(matches[0]), nil
	case 0:
		return "", &IOError{Op: "resolve", Path: target, Err: os.ErrNotExist}
	default:
		return "", &IOError{Op: "resolve", Path: target, Err: errors.Errorf("pattern matches %d files: %s", len(matches), strings.Join(matches, ", "))}
	}
}

// ReadFile returns the full contents of path
func (s *Store) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(s.getAbsPath(path))
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return content, nil
}

// WriteFileAtomic replaces path with content through a temp file and a
// rename. An existing file keeps its permission bits.
func (s *Store) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	absPath := s.getAbsPath(path)
	tempPath := absPath + ".tmp"

	mode := os.FileMode(0644)
	if info, err := os.Stat(absPath); err == nil {
		mode = info.Mode().Perm()
	} else if !os.IsNotExist(err) {
		return &IOError{Op: "write", Path: path, Err: err}
	}

	// Write to temp file
	if err := os.WriteFile(tempPath, content, mode); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return &IOError{Op: "write", Path: path, Err: err}
	}

	zerolog.Ctx(ctx).Debug().Str("path", absPath).Int("bytes", len(content)).Msg("wrote file")
	return nil
}

// BackupPath is where BackupFile copies path to
func BackupPath(path string) string {
	return path + ".bak"
}

// BackupFile copies path to BackupPath(path), overwriting an older backup
func (s *Store) BackupFile(ctx context.Context, path string) error {
	absPath := s.getAbsPath(path)
	if err := copyFile(absPath, BackupPath(absPath)); err != nil {
		return &IOError{Op: "backup", Path: path, Err: err}
	}

	zerolog.Ctx(ctx).Debug().Str("path", absPath).Str("backup", BackupPath(absPath)).Msg("backed up file")
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
