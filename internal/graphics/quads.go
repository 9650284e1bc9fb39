package graphics

import (
	"tileworld/internal/meshing"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// QuadMesh is one uploaded batch, drawn with a single call.
type QuadMesh struct {
	Key         meshing.BatchKey
	vao         uint32
	vbo         uint32
	vertexCount int32
}

// NewQuadMesh uploads a batch once; the buffer is never rewritten.
func NewQuadMesh(b meshing.Batch) *QuadMesh {
	m := &QuadMesh{Key: b.Key, vertexCount: int32(len(b.Vertices) / meshing.FloatsPerVertex)}
	if m.vertexCount == 0 {
		return m
	}
	const stride = meshing.FloatsPerVertex * 4

	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(b.Vertices)*4, gl.Ptr(b.Vertices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 1, gl.FLOAT, false, stride, gl.PtrOffset(4*4))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return m
}

func (m *QuadMesh) Draw() {
	if m.vertexCount == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.vertexCount)
	gl.BindVertexArray(0)
}

func (m *QuadMesh) Delete() {
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	m.vao, m.vbo, m.vertexCount = 0, 0, 0
}

// TileProgram is the shader and sprite array shared by the tile layers.
type TileProgram struct {
	shader   *Shader
	textures uint32
}

func NewTileProgram() (*TileProgram, error) {
	shader, err := NewShader(tileVertexShader, tileFragmentShader)
	if err != nil {
		return nil, err
	}
	return &TileProgram{shader: shader, textures: LoadTileTextures()}, nil
}

// Bind activates the program with a projection for the following draws.
func (p *TileProgram) Bind(proj *float32) {
	p.shader.Use()
	p.shader.SetMatrix4("projection", proj)
	p.shader.SetInt("tiles", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, p.textures)
}

func (p *TileProgram) Delete() {
	p.shader.Delete()
	if p.textures != 0 {
		gl.DeleteTextures(1, &p.textures)
		p.textures = 0
	}
}
