package task

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// backup copies the store file to the backup path. A failure is reported
// and otherwise ignored.
func (s *Store) backup() {
	dst := s.BackupPath()
	if sameFile(s.path, dst) {
		s.notifier.Error("failed to create backup", "path", dst, "err", "backup path is the task file")
		return
	}
	if err := copyFile(s.path, dst); err != nil {
		s.notifier.Error("failed to create backup", "path", dst, "err", err)
		return
	}
	s.notifier.Info("created backup of corrupted file", "path", dst)
}

// copyFile copies src to dst byte-for-byte, replacing dst, and carries over
// the permission bits and modification time when it can.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create backup: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy to backup: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close backup: %w", err)
	}

	_ = os.Chmod(dst, info.Mode().Perm())
	_ = os.Chtimes(dst, info.ModTime(), info.ModTime())
	return nil
}

// sameFile reports whether a and b name the same file, by path or by inode.
func sameFile(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
