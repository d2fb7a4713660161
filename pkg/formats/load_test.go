package formats

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Faultbox/globe/pkg/grf"
)

func TestLoadHeightmap(t *testing.T) {
	dir := t.TempDir()

	gatPath := filepath.Join(dir, "field.GAT")
	if err := os.WriteFile(gatPath, createTestGAT(2, 1, []float32{-3, -6}, nil), 0644); err != nil {
		t.Fatal(err)
	}

	hmapPath := filepath.Join(dir, "world.hmap")
	if err := WriteHMAPFile(hmapPath, testHeightmap()); err != nil {
		t.Fatal(err)
	}

	pngPath := filepath.Join(dir, "dem.png")
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.SetGray(1, 1, color.Gray{Y: 255})
	f, err := os.Create(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	tests := []struct {
		name string
		path string
		opts LoadOptions
		w, h int
		idx  int
		want int32
	}{
		{"gat default scale", gatPath, LoadOptions{}, 2, 1, 1, 6},
		{"gat scaled", gatPath, LoadOptions{GATScale: 10}, 2, 1, 0, 30},
		{"hmap", hmapPath, LoadOptions{}, 3, 2, 2, 8848},
		{"png default max", pngPath, LoadOptions{}, 2, 2, 3, 255},
		{"png custom max", pngPath, LoadOptions{ImageMax: 4000}, 2, 2, 3, 4000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hm, err := LoadHeightmap(tt.path, tt.opts)
			if err != nil {
				t.Fatalf("LoadHeightmap failed: %v", err)
			}
			if hm.Width != tt.w || hm.Height != tt.h {
				t.Fatalf("dimensions %dx%d, want %dx%d", hm.Width, hm.Height, tt.w, tt.h)
			}
			if hm.Altitudes[tt.idx] != tt.want {
				t.Errorf("altitude %d = %d, want %d", tt.idx, hm.Altitudes[tt.idx], tt.want)
			}
			if err := hm.Validate(); err != nil {
				t.Errorf("loaded heightmap invalid: %v", err)
			}
		})
	}
}

func TestLoadHeightmap_UnknownFormat(t *testing.T) {
	_, err := LoadHeightmap("world.xyz", LoadOptions{})
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("LoadHeightmap error = %v, want %v", err, ErrUnknownFormat)
	}
}

func TestLoadHeightmap_Missing(t *testing.T) {
	for _, name := range []string{"a.gat", "a.hmap", "a.png"} {
		if _, err := LoadHeightmap(filepath.Join(t.TempDir(), name), LoadOptions{}); err == nil {
			t.Errorf("expected error loading missing %s", name)
		}
	}
}

func writeTestArchive(t *testing.T, files map[string][]byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "maps.grf")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w, err := grf.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	for name, data := range files {
		if err := w.Add(name, data); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadHeightmap_Archive(t *testing.T) {
	archive := writeTestArchive(t, map[string][]byte{
		"data/field.gat":  createTestGAT(2, 1, []float32{-3, -6}, nil),
		"data/field.gnd":  createTestGND(1, 1, nil, flatHeights(1, -7)),
		"data/readme.txt": []byte("not a map"),
	})

	hm, err := LoadHeightmap(archive+":data/field.gat", LoadOptions{})
	if err != nil {
		t.Fatalf("LoadHeightmap failed: %v", err)
	}
	if hm.Width != 2 || hm.Altitudes[1] != 6 {
		t.Errorf("unexpected heightmap %+v", hm)
	}

	hm, err = LoadHeightmap(archive+":DATA\\FIELD.GND", LoadOptions{})
	if err != nil {
		t.Fatalf("LoadHeightmap gnd failed: %v", err)
	}
	if hm.Altitudes[0] != 7 {
		t.Errorf("gnd altitude = %d, want 7", hm.Altitudes[0])
	}

	if _, err := LoadHeightmap(archive+":data/missing.gat", LoadOptions{}); !errors.Is(err, grf.ErrNotFound) {
		t.Errorf("expected grf.ErrNotFound, got %v", err)
	}
	if _, err := LoadHeightmap(archive+":data/readme.txt", LoadOptions{}); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}

	names, err := ArchiveHeightmaps(archive)
	if err != nil {
		t.Fatalf("ArchiveHeightmaps: %v", err)
	}
	want := []string{"data/field.gat", "data/field.gnd"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("ArchiveHeightmaps = %q, want %q", names, want)
	}
}

func TestSplitArchivePath(t *testing.T) {
	tests := []struct {
		path, archive, entry string
		ok                   bool
	}{
		{"data.grf:data/prontera.gat", "data.grf", "data/prontera.gat", true},
		{"/x/Data.GRF:a.gnd", "/x/Data.GRF", "a.gnd", true},
		{"world.hmap", "", "", false},
		{"C:/maps/world.hmap", "", "", false},
	}
	for _, tt := range tests {
		archive, entry, ok := SplitArchivePath(tt.path)
		if archive != tt.archive || entry != tt.entry || ok != tt.ok {
			t.Errorf("SplitArchivePath(%q) = %q, %q, %v", tt.path, archive, entry, ok)
		}
	}
}

func TestDecodeHeightmap(t *testing.T) {
	hm, err := DecodeHeightmap("x.gnd", createTestGND(1, 1, nil, flatHeights(1, -2)), LoadOptions{GATScale: 3})
	if err != nil {
		t.Fatalf("DecodeHeightmap: %v", err)
	}
	if hm.Altitudes[0] != 6 {
		t.Errorf("altitude = %d, want 6", hm.Altitudes[0])
	}

	if _, err := DecodeHeightmap("x.bin", nil, LoadOptions{}); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}
