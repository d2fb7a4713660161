package formats

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/globe/pkg/globe"
)

// HMAP format errors.
var (
	ErrInvalidHMAPMagic       = errors.New("invalid HMAP magic: expected 'HMAP'")
	ErrUnsupportedHMAPVersion = errors.New("unsupported HMAP version")
	ErrTruncatedHMAPData      = errors.New("truncated HMAP data")
)

// HMAP layout (little-endian):
//
//	magic   [4]byte "HMAP"
//	version [2]byte minor, major
//	width   uint32
//	height  uint32
//	samples [width*height]int32, row-major
const (
	hmapMagic        = "HMAP"
	hmapHeaderSize   = 14
	hmapVersionMajor = 1
	hmapVersionMinor = 0
	hmapMaxDimension = 1 << 16
)

// ParseHMAP parses an HMAP heightmap from raw bytes.
func ParseHMAP(data []byte) (globe.Heightmap, error) {
	if len(data) < hmapHeaderSize {
		return globe.Heightmap{}, ErrTruncatedHMAPData
	}
	if string(data[0:4]) != hmapMagic {
		return globe.Heightmap{}, ErrInvalidHMAPMagic
	}
	if data[5] != hmapVersionMajor {
		return globe.Heightmap{}, fmt.Errorf("%w: %d.%d", ErrUnsupportedHMAPVersion, data[5], data[4])
	}

	width := binary.LittleEndian.Uint32(data[6:10])
	height := binary.LittleEndian.Uint32(data[10:14])
	if width == 0 || height == 0 || width > hmapMaxDimension || height > hmapMaxDimension {
		return globe.Heightmap{}, fmt.Errorf("invalid HMAP dimensions: %dx%d", width, height)
	}

	count := int(width) * int(height)
	body := data[hmapHeaderSize:]
	if len(body) < count*4 {
		return globe.Heightmap{}, fmt.Errorf("%w: have %d bytes, want %d", ErrTruncatedHMAPData, len(body), count*4)
	}

	alts := make([]int32, count)
	for i := range alts {
		alts[i] = int32(binary.LittleEndian.Uint32(body[i*4:]))
	}
	return globe.Heightmap{Width: int(width), Height: int(height), Altitudes: alts}, nil
}

// ParseHMAPFile parses an HMAP file from disk.
func ParseHMAPFile(path string) (globe.Heightmap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return globe.Heightmap{}, fmt.Errorf("reading HMAP file: %w", err)
	}
	return ParseHMAP(data)
}

// WriteHMAP encodes hm to w.
func WriteHMAP(w io.Writer, hm globe.Heightmap) error {
	if err := hm.Validate(); err != nil {
		return err
	}
	if hm.Width > hmapMaxDimension || hm.Height > hmapMaxDimension {
		return fmt.Errorf("heightmap too large for HMAP: %dx%d", hm.Width, hm.Height)
	}

	bw := bufio.NewWriter(w)
	header := make([]byte, hmapHeaderSize)
	copy(header, hmapMagic)
	header[4] = hmapVersionMinor
	header[5] = hmapVersionMajor
	binary.LittleEndian.PutUint32(header[6:10], uint32(hm.Width))
	binary.LittleEndian.PutUint32(header[10:14], uint32(hm.Height))
	if _, err := bw.Write(header); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, hm.Altitudes); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteHMAPFile writes hm to path, creating or truncating it.
func WriteHMAPFile(path string, hm globe.Heightmap) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteHMAP(f, hm); err != nil {
		f.Close()
		return fmt.Errorf("writing HMAP file: %w", err)
	}
	return f.Close()
}
