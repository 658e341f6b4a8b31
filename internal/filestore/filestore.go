// Package filestore copies externally supplied transient files into the
// app-owned document area and hands back stable locators. It never mutates
// or removes the transient source.
package filestore

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// submissionsDir is the reserved subdirectory for materialized documents,
// one per install.
const submissionsDir = "rpas_submissions"

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// FileStore materializes files under root/rpas_submissions. Locators are
// absolute paths into that directory and remain valid across restarts.
// Materialized files are never reclaimed by any workflow; Remove exists for
// maintenance use only.
type FileStore struct {
	root string
}

func New(root string) *FileStore {
	return &FileStore{root: root}
}

// Dir returns the reserved document directory without creating it.
func (f *FileStore) Dir() string {
	return filepath.Join(f.root, submissionsDir)
}

// EnsureDir creates the reserved directory if absent. Idempotent.
func (f *FileStore) EnsureDir() (string, error) {
	dir := f.Dir()
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// SanitizeName maps originalName onto the restricted character set used for
// stored filenames.
func SanitizeName(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}

// Materialize copies the file at src into the reserved directory under an
// ingestion-timestamped name and returns the new locator. Repeated attaches
// of same-named files get distinct locators: the name carries millisecond
// precision and an O_EXCL counter suffix settles same-millisecond ties.
func (f *FileStore) Materialize(ctx context.Context, src, originalName string) (string, error) {
	dir, err := f.EnsureDir()
	if err != nil {
		return "", err
	}

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open source %s: %w", src, err)
	}
	defer in.Close()

	ts := time.Now().UnixMilli()
	safe := SanitizeName(originalName)

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		name := fmt.Sprintf("%d_%s", ts, safe)
		if attempt > 0 {
			name = fmt.Sprintf("%d_%d_%s", ts, attempt, safe)
		}
		dst := filepath.Join(dir, name)

		out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o660)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create %s: %w", dst, err)
		}

		if _, err := io.Copy(out, in); err != nil {
			out.Close()
			os.Remove(dst)
			return "", fmt.Errorf("copy to %s: %w", dst, err)
		}
		if err := out.Close(); err != nil {
			return "", fmt.Errorf("close %s: %w", dst, err)
		}
		return dst, nil
	}
}

// Remove deletes the file at locator if present; absent files are a no-op.
func (f *FileStore) Remove(locator string) error {
	err := os.Remove(locator)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", locator, err)
	}
	return nil
}

// FileInfo reports existence and size of a materialized file.
type FileInfo struct {
	Exists bool
	Size   int64
}

// Stat returns basic diagnostics for a locator. A missing file is not an
// error.
func (f *FileStore) Stat(locator string) (FileInfo, error) {
	fi, err := os.Stat(locator)
	if errors.Is(err, fs.ErrNotExist) {
		return FileInfo{}, nil
	}
	if err != nil {
		return FileInfo{}, fmt.Errorf("stat %s: %w", locator, err)
	}
	return FileInfo{Exists: true, Size: fi.Size()}, nil
}

// ReadBase64 returns the file content encoded as standard base64, for
// diagnostics or export.
func (f *FileStore) ReadBase64(locator string) (string, error) {
	raw, err := os.ReadFile(locator)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", locator, err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
