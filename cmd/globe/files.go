package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/globe/pkg/formats"
	"github.com/Faultbox/globe/pkg/grf"
)

// defaultWorldPath is where gen writes when no -o is given.
const defaultWorldPath = "world.hmap"

var errNotHMAP = errors.New("generated worlds are written as .hmap")

// flagSet reports whether the named flag was given on the command line.
func flagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// genOutputPath picks the file gen writes. The configured output path is
// for rendered images, so it only applies when given explicitly with -o.
func genOutputPath(path string, explicit bool) (string, error) {
	if !explicit {
		return defaultWorldPath, nil
	}
	if !strings.EqualFold(filepath.Ext(path), ".hmap") {
		return "", fmt.Errorf("%w: %s", errNotHMAP, path)
	}
	return path, nil
}

// packArchive writes files into a new GRF at out under prefix and returns the
// entry names. Every file must decode as a heightmap. On failure the partial
// archive is removed.
func packArchive(out, prefix string, files []string) (names []string, err error) {
	f, err := os.Create(out)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
		if err != nil {
			os.Remove(out)
			names = nil
		}
	}()

	w, err := grf.NewWriter(f)
	if err != nil {
		return nil, err
	}

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		name := prefix + filepath.Base(path)
		if _, err := formats.DecodeHeightmap(name, data, formats.DefaultLoadOptions()); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if err := w.Add(name, data); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return names, nil
}
