package formats

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Faultbox/globe/pkg/globe"
	"github.com/Faultbox/globe/pkg/grf"
)

// ErrUnknownFormat is returned for file extensions with no reader.
var ErrUnknownFormat = errors.New("unknown heightmap format")

// archiveSep separates a GRF archive from the entry inside it, as in
// "data.grf:data/prontera.gat".
const archiveSep = ".grf:"

// LoadOptions controls unit conversion when loading.
type LoadOptions struct {
	GATScale float32 // multiplier for GAT and GND heights (0 = 1)
	ImageMax float32 // altitude of a white pixel (0 = 255)
}

// DefaultLoadOptions returns the conversion used when nothing is configured.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		GATScale: 1,
		ImageMax: 255,
	}
}

func (o LoadOptions) withDefaults() LoadOptions {
	d := DefaultLoadOptions()
	if o.GATScale == 0 {
		o.GATScale = d.GATScale
	}
	if o.ImageMax == 0 {
		o.ImageMax = d.ImageMax
	}
	return o
}

// Extensions lists the file extensions DecodeHeightmap understands.
func Extensions() []string {
	return []string{".gat", ".gnd", ".hmap", ".png", ".tif", ".tiff"}
}

func supported(name string) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if !slices.Contains(Extensions(), ext) {
		return "", fmt.Errorf("%w: %q (supported: %s)",
			ErrUnknownFormat, ext, strings.Join(Extensions(), ", "))
	}
	return ext, nil
}

// SplitArchivePath splits "archive.grf:entry" into its parts. ok is false
// for plain file paths.
func SplitArchivePath(path string) (archive, entry string, ok bool) {
	i := strings.Index(strings.ToLower(path), archiveSep)
	if i < 0 {
		return "", "", false
	}
	cut := i + len(archiveSep)
	return path[:cut-1], path[cut:], true
}

// LoadHeightmap reads a heightmap file, or an entry inside a GRF archive
// when path has the form "archive.grf:entry".
func LoadHeightmap(path string, opts LoadOptions) (globe.Heightmap, error) {
	name := path
	archivePath, entry, inArchive := SplitArchivePath(path)
	if inArchive {
		name = entry
	}
	if _, err := supported(name); err != nil {
		return globe.Heightmap{}, err
	}

	var data []byte
	var err error
	if inArchive {
		data, err = readArchiveEntry(archivePath, entry)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return globe.Heightmap{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return DecodeHeightmap(name, data, opts)
}

func readArchiveEntry(archivePath, entry string) ([]byte, error) {
	a, err := grf.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer a.Close()
	return a.Read(entry)
}

// DecodeHeightmap parses data, picking the decoder by the extension of name.
func DecodeHeightmap(name string, data []byte, opts LoadOptions) (globe.Heightmap, error) {
	ext, err := supported(name)
	if err != nil {
		return globe.Heightmap{}, err
	}
	opts = opts.withDefaults()

	switch ext {
	case ".gat":
		gat, err := ParseGAT(data)
		if err != nil {
			return globe.Heightmap{}, err
		}
		return gat.Heightmap(opts.GATScale), nil

	case ".gnd":
		gnd, err := ParseGND(data)
		if err != nil {
			return globe.Heightmap{}, err
		}
		return gnd.Heightmap(opts.GATScale), nil

	case ".hmap":
		return ParseHMAP(data)

	default: // images
		return DecodeImageHeightmap(bytes.NewReader(data), opts.ImageMax)
	}
}

// ArchiveHeightmaps lists the entries of a GRF archive that
// DecodeHeightmap can read.
func ArchiveHeightmaps(archivePath string) ([]string, error) {
	a, err := grf.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer a.Close()

	var names []string
	for _, name := range a.List() {
		if _, err := supported(name); err == nil {
			names = append(names, name)
		}
	}
	return names, nil
}
