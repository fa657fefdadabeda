package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var errOutputExists = errors.New("the output file already exists (use -f to overwrite it)")

// atomicFile is written next to its final destination and renamed over it on Commit,
// so a failed run never leaves a truncated output behind.
type atomicFile struct {
	*os.File
	path string
}

func createAtomic(path string) (*atomicFile, error) {
	dir, name := filepath.Split(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", name, uuid.NewString()))
	f, err := os.OpenFile(tmp, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}
	return &atomicFile{File: f, path: path}, nil
}

// Commit flushes the temporary file and moves it to the destination
func (a *atomicFile) Commit() error {
	if err := a.Sync(); err != nil {
		a.Abort()
		return err
	}
	if err := a.Close(); err != nil {
		os.Remove(a.Name())
		return err
	}
	if err := os.Rename(a.Name(), a.path); err != nil {
		os.Remove(a.Name())
		return err
	}
	return nil
}

// Abort discards the temporary file
func (a *atomicFile) Abort() {
	a.Close()
	os.Remove(a.Name())
}

// checkOverwrite returns nil if the output file can be written
func (c *cli) checkOverwrite(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if c.force {
		return nil
	}
	if c.interactive() && askForConfirmation(c.stdin, c.stderr, fmt.Sprintf("%s already exists. Overwrite", path)) {
		return nil
	}
	return errOutputExists
}
