package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

var ErrMissingDir = errors.New("output directory does not exist")

// publisher writes output files under root so that a reader of the
// destination, such as a web server serving root, only ever sees the previous
// or the new complete file.
type publisher struct {
	fs   afero.Fs
	root string
	perm os.FileMode
}

func newPublisher(fs afero.Fs, root string) *publisher {
	return &publisher{fs: fs, root: root, perm: os.FileMode(0664)}
}

// Publish writes content to rel.tmp and renames it over rel. Directories are
// not created.
func (p *publisher) Publish(rel string, content []byte) error {
	dest := filepath.Join(p.root, filepath.FromSlash(rel))

	dir := filepath.Dir(dest)
	fi, err := p.fs.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %v", ErrMissingDir, dir)
		}
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %v is not a directory", ErrMissingDir, dir)
	}

	tmp := dest + ".tmp"
	if err := afero.WriteFile(p.fs, tmp, content, p.perm); err != nil {
		p.fs.Remove(tmp)
		return fmt.Errorf("writing %v: %w", tmp, err)
	}
	if err := p.fs.Rename(tmp, dest); err != nil {
		p.fs.Remove(tmp)
		return fmt.Errorf("publishing %v: %w", dest, err)
	}
	return nil
}
