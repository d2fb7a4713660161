package formats

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/tiff"
)

func gray16Image() *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, 3, 2))
	img.SetGray16(0, 0, color.Gray16{Y: 0})
	img.SetGray16(1, 0, color.Gray16{Y: 0x8000})
	img.SetGray16(2, 0, color.Gray16{Y: 0xffff})
	img.SetGray16(0, 1, color.Gray16{Y: 0x1234})
	img.SetGray16(1, 1, color.Gray16{Y: 0x0001})
	img.SetGray16(2, 1, color.Gray16{Y: 0xfffe})
	return img
}

func TestDecodeImageHeightmap_PNG16(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, gray16Image()); err != nil {
		t.Fatal(err)
	}

	hm, err := DecodeImageHeightmap(&buf, 65535)
	if err != nil {
		t.Fatalf("DecodeImageHeightmap failed: %v", err)
	}
	want := []int32{0, 0x8000, 0xffff, 0x1234, 1, 0xfffe}
	if hm.Width != 3 || hm.Height != 2 {
		t.Fatalf("dimensions %dx%d, want 3x2", hm.Width, hm.Height)
	}
	for i := range want {
		if hm.Altitudes[i] != want[i] {
			t.Errorf("altitude %d = %d, want %d", i, hm.Altitudes[i], want[i])
		}
	}
}

func TestDecodeImageHeightmap_TIFF(t *testing.T) {
	var buf bytes.Buffer
	if err := tiff.Encode(&buf, gray16Image(), nil); err != nil {
		t.Fatal(err)
	}

	hm, err := DecodeImageHeightmap(&buf, 1000)
	if err != nil {
		t.Fatalf("DecodeImageHeightmap failed: %v", err)
	}
	if hm.Altitudes[0] != 0 || hm.Altitudes[2] != 1000 || hm.Altitudes[1] != 500 {
		t.Errorf("altitudes = %v, want 0, 500, 1000 in the first row", hm.Altitudes[:3])
	}
}

func TestImageHeightmap_Gray8(t *testing.T) {
	img := image.NewGray(image.Rect(5, 5, 7, 6))
	img.SetGray(5, 5, color.Gray{Y: 255})
	img.SetGray(6, 5, color.Gray{Y: 51})

	hm := ImageHeightmap(img, 255)
	if hm.Width != 2 || hm.Height != 1 {
		t.Fatalf("dimensions %dx%d, want 2x1", hm.Width, hm.Height)
	}
	if hm.Altitudes[0] != 255 || hm.Altitudes[1] != 51 {
		t.Errorf("altitudes = %v, want [255 51]", hm.Altitudes)
	}
}

func TestDecodeImageHeightmap_Garbage(t *testing.T) {
	if _, err := DecodeImageHeightmap(bytes.NewReader([]byte("not an image")), 1); err == nil {
		t.Error("expected error decoding garbage")
	}
}
