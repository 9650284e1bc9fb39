package graphics

import (
	"image"

	"tileworld/internal/palette"
	"tileworld/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// SpriteSize is the side length in texels of every tile sprite.
const SpriteSize = 16

// LoadTileTextures uploads one array layer per texture handle, so a vertex's
// texture value is directly its layer.
func LoadTileTextures() uint32 {
	layers := int32(world.TextureCount)

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, texture)

	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	gl.TexImage3D(gl.TEXTURE_2D_ARRAY, 0, gl.RGBA8, SpriteSize, SpriteSize, layers, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	for id := range world.TextureCount {
		img := palette.Sprite(id, SpriteSize)
		gl.TexSubImage3D(gl.TEXTURE_2D_ARRAY, 0, 0, 0, int32(id), SpriteSize, SpriteSize, 1,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	}

	gl.BindTexture(gl.TEXTURE_2D_ARRAY, 0)
	return texture
}

// LoadAlphaTexture uploads a single-channel image, used for glyph atlases.
func LoadAlphaTexture(img *image.Alpha) uint32 {
	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.R8,
		int32(img.Rect.Dx()),
		int32(img.Rect.Dy()),
		0,
		gl.RED,
		gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix),
	)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texture
}
