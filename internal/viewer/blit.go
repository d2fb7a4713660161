package viewer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/globe/pkg/globe"
)

// blitter uploads a PixelBuffer into a texture and copies it to the
// default framebuffer. No shaders are needed.
type blitter struct {
	fbo     uint32
	texture uint32
	width   int32
	height  int32
	rgba    []byte
}

func newBlitter() *blitter {
	b := &blitter{}
	gl.GenTextures(1, &b.texture)
	gl.BindTexture(gl.TEXTURE_2D, b.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.GenFramebuffers(1, &b.fbo)
	return b
}

// resize reallocates texture storage and reattaches it to the read FBO.
func (b *blitter) resize(width, height int) error {
	b.width, b.height = int32(width), int32(height)
	b.rgba = make([]byte, width*height*4)

	gl.BindTexture(gl.TEXTURE_2D, b.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, b.width, b.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, b.fbo)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, b.texture, 0)
	status := gl.CheckFramebufferStatus(gl.READ_FRAMEBUFFER)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return nil
}

// upload copies buf into the texture. buf must match the last resize.
func (b *blitter) upload(buf *globe.PixelBuffer) {
	packRGBA(b.rgba, buf.Pix)
	gl.BindTexture(gl.TEXTURE_2D, b.texture)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, b.width, b.height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(b.rgba))
}

// draw copies the texture to the window, flipping rows because GL's
// origin is the bottom-left corner.
func (b *blitter) draw() {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, b.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(0, 0, b.width, b.height, 0, b.height, b.width, 0, gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
}

func (b *blitter) destroy() {
	gl.DeleteFramebuffers(1, &b.fbo)
	gl.DeleteTextures(1, &b.texture)
}

// packRGBA expands RGB pixels into opaque RGBA bytes.
func packRGBA(dst []byte, pix []globe.RGB) {
	for i, c := range pix {
		o := i * 4
		dst[o] = c.R
		dst[o+1] = c.G
		dst[o+2] = c.B
		dst[o+3] = 0xff
	}
}
