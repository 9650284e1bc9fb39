package graphics

import (
	"errors"
	"image"
	"image/draw"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// FontCharacter describes a single character's placement and metrics within the atlas
type FontCharacter struct {
	// Pixel coordinates of the glyph in the atlas texture (top-left origin)
	AtlasX float32
	AtlasY float32
	// Glyph bitmap size in pixels
	Width  float32
	Height float32
	// Bearing (offset from baseline) in pixels
	BearingX float32
	BearingY float32
	Advance  int
}

// FontAtlas holds baked glyphs. TextureID is zero until Upload.
type FontAtlas struct {
	TextureID  uint32
	Image      *image.Alpha
	Characters map[rune]FontCharacter
	LineHeight int
}

const atlasWidth = 256

// BakeFontAtlas renders printable ASCII from face into a single-channel
// atlas. It does not touch GL.
func BakeFontAtlas(face font.Face) *FontAtlas {
	const padding = 1
	metrics := face.Metrics()
	lineH := (metrics.Ascent + metrics.Descent).Ceil()

	type glyph struct {
		r       rune
		dr      image.Rectangle
		mask    image.Image
		maskp   image.Point
		advance fixed.Int26_6
	}
	var glyphs []glyph
	for r := rune(32); r <= 126; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		if blankGlyph(mask, maskp, dr) {
			// keep the advance, skip the bitmap
			dr = image.Rectangle{Min: dr.Min, Max: dr.Min}
		}
		glyphs = append(glyphs, glyph{r, dr, mask, maskp, advance})
	}

	// First pass: row-pack to find the height
	offsetX, rows, rowH := 0, 1, 0
	for _, g := range glyphs {
		if offsetX+g.dr.Dx() > atlasWidth {
			offsetX = 0
			rows++
		}
		offsetX += g.dr.Dx() + padding
		rowH = max(rowH, g.dr.Dy())
	}
	atlasH := rows * (rowH + padding)

	atlas := &FontAtlas{
		Image:      image.NewAlpha(image.Rect(0, 0, atlasWidth, atlasH)),
		Characters: make(map[rune]FontCharacter, len(glyphs)),
		LineHeight: lineH,
	}

	// Second pass: copy each glyph and record metrics
	offsetX, offsetY := 0, 0
	for _, g := range glyphs {
		gw, gh := g.dr.Dx(), g.dr.Dy()
		if offsetX+gw > atlasWidth {
			offsetX = 0
			offsetY += rowH + padding
		}
		if gw > 0 && gh > 0 && g.mask != nil {
			draw.Draw(atlas.Image, image.Rect(offsetX, offsetY, offsetX+gw, offsetY+gh), g.mask, g.maskp, draw.Src)
		}
		atlas.Characters[g.r] = FontCharacter{
			AtlasX:   float32(offsetX),
			AtlasY:   float32(offsetY),
			Width:    float32(gw),
			Height:   float32(gh),
			BearingX: float32(g.dr.Min.X),
			BearingY: float32(-g.dr.Min.Y),
			Advance:  g.advance.Round(),
		}
		offsetX += gw + padding
	}
	return atlas
}

func blankGlyph(mask image.Image, maskp image.Point, dr image.Rectangle) bool {
	if mask == nil {
		return true
	}
	for y := range dr.Dy() {
		for x := range dr.Dx() {
			if _, _, _, a := mask.At(maskp.X+x, maskp.Y+y).RGBA(); a != 0 {
				return false
			}
		}
	}
	return true
}

// Upload sends the atlas image to the GPU.
func (a *FontAtlas) Upload() {
	a.TextureID = LoadAlphaTexture(a.Image)
}

// FontRenderer renders ASCII text strings in window pixels
type FontRenderer struct {
	atlas       *FontAtlas
	shader      *Shader
	projection  mgl32.Mat4
	vao         uint32
	vbo         uint32
	maxCharsCap int
}

// NewFontRenderer bakes basicfont, uploads it and compiles the text shader
func NewFontRenderer(width, height int) (*FontRenderer, error) {
	atlas := BakeFontAtlas(basicfont.Face7x13)
	if len(atlas.Characters) == 0 {
		return nil, errors.New("invalid font atlas")
	}
	atlas.Upload()
	shader, err := NewShader(textVertexShader, textFragmentShader)
	if err != nil {
		return nil, err
	}
	fr := &FontRenderer{
		atlas:       atlas,
		shader:      shader,
		maxCharsCap: 256,
	}
	fr.SetViewport(width, height)
	fr.initGL()
	return fr, nil
}

func (fr *FontRenderer) SetViewport(width, height int) {
	fr.projection = mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)
}

func (fr *FontRenderer) LineHeight() int { return fr.atlas.LineHeight }

func (fr *FontRenderer) initGL() {
	gl.GenVertexArrays(1, &fr.vao)
	gl.GenBuffers(1, &fr.vbo)
	gl.BindVertexArray(fr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, fr.vbo)
	// 6 verts per char, 4 floats per vert
	capFloats := fr.maxCharsCap * 6 * 4
	gl.BufferData(gl.ARRAY_BUFFER, capFloats*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 4, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// RenderLines draws lines of text starting with the first baseline at
// (x, yStart), lineStep pixels apart.
func (fr *FontRenderer) RenderLines(lines []string, x, yStart, lineStep, scale float32, color mgl32.Vec3) {
	totalChars := 0
	for _, line := range lines {
		totalChars += len(line)
	}
	if totalChars == 0 {
		return
	}

	vertices := make([]float32, 0, totalChars*6*4)
	y := yStart
	for _, line := range lines {
		vertices = append(vertices, fr.atlas.BuildVertices(line, x, y, scale)...)
		y += lineStep
	}

	fr.shader.Use()
	fr.shader.SetVector3("textColor", color.X(), color.Y(), color.Z())
	fr.shader.SetMatrix4("projection", &fr.projection[0])
	fr.shader.SetInt("text", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, fr.atlas.TextureID)
	gl.BindVertexArray(fr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, fr.vbo)

	// Orphan the buffer to avoid stalls on dynamic updates
	sz := len(vertices) * 4
	gl.BufferData(gl.ARRAY_BUFFER, sz, nil, gl.DYNAMIC_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, sz, gl.Ptr(vertices))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)/4))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

func (fr *FontRenderer) Dispose() {
	fr.shader.Delete()
	gl.DeleteBuffers(1, &fr.vbo)
	gl.DeleteVertexArrays(1, &fr.vao)
	if fr.atlas.TextureID != 0 {
		gl.DeleteTextures(1, &fr.atlas.TextureID)
	}
}

// Measure returns the width and height in pixels the text occupies.
func (a *FontAtlas) Measure(text string, scale float32) (float32, float32) {
	var width, maxH float32
	for _, r := range text {
		fc, ok := a.Characters[r]
		if !ok {
			fc = a.Characters[' ']
		}
		width += float32(fc.Advance) * scale
		maxH = max(maxH, fc.Height*scale)
	}
	return width, maxH
}

// BuildVertices lays out text with its baseline at y. Missing glyphs
// advance like a space.
func (a *FontAtlas) BuildVertices(text string, x, y, scale float32) []float32 {
	vertices := make([]float32, 0, len(text)*6*4)
	for _, r := range text {
		fc, ok := a.Characters[r]
		if !ok {
			x += float32(a.Characters[' '].Advance) * scale
			continue
		}
		if fc.Width > 0 && fc.Height > 0 {
			vertices = append(vertices, a.charVertices(fc, x, y, scale)...)
		}
		x += float32(fc.Advance) * scale
	}
	return vertices
}

func (a *FontAtlas) charVertices(fc FontCharacter, x, y, scale float32) []float32 {
	xPos := x + fc.BearingX*scale
	yPos := y - fc.BearingY*scale
	w := fc.Width * scale
	h := fc.Height * scale

	aw, ah := float32(a.Image.Rect.Dx()), float32(a.Image.Rect.Dy())
	u0, v0 := fc.AtlasX/aw, fc.AtlasY/ah
	u1, v1 := u0+fc.Width/aw, v0+fc.Height/ah

	return []float32{
		// triangle 1
		xPos, yPos + h, u0, v1,
		xPos, yPos, u0, v0,
		xPos + w, yPos, u1, v0,
		// triangle 2
		xPos, yPos + h, u0, v1,
		xPos + w, yPos, u1, v0,
		xPos + w, yPos + h, u1, v1,
	}
}
