package grf

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
)

// Writer builds a GRF archive. Files are compressed as they are added;
// the header and table are written by Close.
type Writer struct {
	w       io.WriteSeeker
	entries []Entry
	offset  uint32 // relative to the end of the header
	err     error
}

// NewWriter starts an archive at the beginning of w.
func NewWriter(w io.WriteSeeker) (*Writer, error) {
	if _, err := w.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	// Placeholder header, rewritten by Close.
	if _, err := w.Write(make([]byte, headerSize)); err != nil {
		return nil, err
	}
	return &Writer{w: w}, nil
}

// Add compresses data and stores it under name.
func (gw *Writer) Add(name string, data []byte) error {
	if gw.err != nil {
		return gw.err
	}

	compressed, err := deflate(data)
	if err != nil {
		gw.err = fmt.Errorf("compressing %s: %w", name, err)
		return gw.err
	}

	// Entries are padded to 8 bytes.
	size := uint32(compressed.Len())
	aligned := (size + 7) &^ 7
	compressed.Write(make([]byte, aligned-size))

	if _, err := gw.w.Write(compressed.Bytes()); err != nil {
		gw.err = fmt.Errorf("writing %s: %w", name, err)
		return gw.err
	}

	gw.entries = append(gw.entries, Entry{
		Name:             name,
		CompressedSize:   size,
		AlignedSize:      aligned,
		UncompressedSize: uint32(len(data)),
		Flags:            flagFile,
		Offset:           gw.offset,
	})
	gw.offset += aligned
	return nil
}

// Close writes the file table and the final header.
func (gw *Writer) Close() error {
	if gw.err != nil {
		return gw.err
	}

	var table bytes.Buffer
	for _, e := range gw.entries {
		table.Write(encodeName(e.Name))
		table.WriteByte(0)
		binary.Write(&table, binary.LittleEndian, e.CompressedSize)
		binary.Write(&table, binary.LittleEndian, e.AlignedSize)
		binary.Write(&table, binary.LittleEndian, e.UncompressedSize)
		table.WriteByte(e.Flags)
		binary.Write(&table, binary.LittleEndian, e.Offset)
	}

	compressed, err := deflate(table.Bytes())
	if err != nil {
		return fmt.Errorf("compressing file table: %w", err)
	}

	var sizes [8]byte
	binary.LittleEndian.PutUint32(sizes[0:], uint32(compressed.Len()))
	binary.LittleEndian.PutUint32(sizes[4:], uint32(table.Len()))
	if _, err := gw.w.Write(sizes[:]); err != nil {
		return err
	}
	if _, err := gw.w.Write(compressed.Bytes()); err != nil {
		return err
	}

	h := Header{
		TableOffset: gw.offset,
		FileCount:   uint32(len(gw.entries)) + 7,
		Version:     version200,
	}
	copy(h.Magic[:], grfMagic)

	if _, err := gw.w.Seek(0, io.SeekStart); err != nil {
		return err
	}
	return binary.Write(gw.w, binary.LittleEndian, &h)
}

func deflate(data []byte) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return &buf, nil
}
