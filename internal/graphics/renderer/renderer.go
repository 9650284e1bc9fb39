package renderer

import (
	"tileworld/internal/graphics"
	"tileworld/internal/profiling"
	"tileworld/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	renderables []Renderable
	camera      *graphics.Camera
}

// NewRenderer initializes the renderables in order. Later renderables draw
// over earlier ones.
func NewRenderer(width, height int, rs ...Renderable) (*Renderer, error) {
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	renderer := &Renderer{
		renderables: rs,
		camera:      graphics.NewCamera(width, height),
	}

	for i, r := range rs {
		if err := r.Init(); err != nil {
			// Dispose what was already initialized
			for j := i - 1; j >= 0; j-- {
				rs[j].Dispose()
			}
			return nil, err
		}
		r.SetViewport(width, height)
	}

	return renderer, nil
}

// Render draws one frame
func (r *Renderer) Render(w *world.World, dt float64, cursorX, cursorY float64) {
	defer profiling.Track("render.frame")()

	gl.ClearColor(0.08, 0.1, 0.14, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	ctx := RenderContext{
		Camera: r.camera,
		World:  w,
		DT:     dt,
		Proj:   r.camera.GetProjectionMatrix(),
		Cursor: [2]float64{cursorX, cursorY},
	}

	for _, renderable := range r.renderables {
		renderable.Render(ctx)
	}
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
}

// GetCamera returns the camera instance
func (r *Renderer) GetCamera() *graphics.Camera {
	return r.camera
}

// UpdateViewport updates the camera and every renderable
func (r *Renderer) UpdateViewport(width, height int) {
	r.camera.SetViewport(width, height)
	for _, rr := range r.renderables {
		rr.SetViewport(width, height)
	}
}
