package main

import (
	"log"
	"math"
	"time"

	"tileworld/internal/config"
	"tileworld/internal/input"
	"tileworld/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// ViewLoop manages the viewer frame loop
type ViewLoop struct {
	window       *glfw.Window
	components   *ViewerComponents
	inputManager *input.InputManager
	fpsLimiter   *FPSLimiter

	cursorX, cursorY float64
	dragX, dragY     float64
	dragging         bool

	frames           int
	lastFPSCheckTime time.Time
	lastTime         time.Time
}

func NewViewLoop(window *glfw.Window, c *ViewerComponents) *ViewLoop {
	return &ViewLoop{
		window:           window,
		components:       c,
		inputManager:     input.NewInputManager(),
		fpsLimiter:       NewFPSLimiter(),
		lastFPSCheckTime: time.Now(),
		lastTime:         time.Now(),
	}
}

func (l *ViewLoop) Run() {
	for !l.window.ShouldClose() {
		l.tick()
	}
}

func (l *ViewLoop) tick() {
	profiling.Reset()
	now := time.Now()
	dt := now.Sub(l.lastTime).Seconds()
	l.lastTime = now

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	l.update(dt)
	l.inputManager.PostUpdate()
	l.renderFrame(dt)

	l.frames++
	if since := time.Since(l.lastFPSCheckTime); since >= 5*time.Second {
		log.Printf("viewer: %.0f fps [%s]", float64(l.frames)/since.Seconds(), profiling.TopN(3))
		l.frames = 0
		l.lastFPSCheckTime = time.Now()
	}
	l.fpsLimiter.Wait()
}

func (l *ViewLoop) update(dt float64) {
	im := l.inputManager
	cam := l.components.Renderer.GetCamera()

	if im.JustPressed(input.ActionQuit) {
		l.window.SetShouldClose(true)
	}
	if im.JustPressed(input.ActionToggleHUD) {
		l.components.HUD.Toggle()
	}
	if im.JustPressed(input.ActionToggleFeatures) {
		l.components.Features.Toggle()
	}
	if im.JustPressed(input.ActionToggleProfiling) {
		l.components.HUD.ToggleProfiling()
	}
	if im.JustPressed(input.ActionRecenter) {
		half := float32(l.components.World.Size()) / 2
		cam.Center[0], cam.Center[1] = half, half
	}

	// Pan speed is in screen terms so it feels the same at every zoom
	speed := config.GetPanSpeed() * 16 / cam.Zoom * float32(dt)
	if im.IsActive(input.ActionFast) {
		speed *= 4
	}
	var dx, dy float32
	if im.IsActive(input.ActionPanUp) {
		dy += speed
	}
	if im.IsActive(input.ActionPanDown) {
		dy -= speed
	}
	if im.IsActive(input.ActionPanLeft) {
		dx -= speed
	}
	if im.IsActive(input.ActionPanRight) {
		dx += speed
	}
	cam.Pan(dx, dy)

	zoomRate := float32(math.Pow(2, dt))
	cx, cy := float64(cam.Width)/2, float64(cam.Height)/2
	if im.IsActive(input.ActionZoomIn) {
		cam.ZoomBy(zoomRate, cx, cy)
	}
	if im.IsActive(input.ActionZoomOut) {
		cam.ZoomBy(1/zoomRate, cx, cy)
	}

	cam.ClampTo(l.components.World.Size())
	config.SetTileZoom(cam.Zoom)
}

func (l *ViewLoop) handleCursor(x, y float64) {
	cam := l.components.Renderer.GetCamera()
	if l.inputManager.IsActive(input.ActionMouseDrag) {
		if l.dragging {
			cam.Pan(float32(l.dragX-x)/cam.Zoom, float32(y-l.dragY)/cam.Zoom)
		}
		l.dragging = true
		l.dragX, l.dragY = x, y
	} else {
		l.dragging = false
	}
	l.cursorX, l.cursorY = x, y
}

func (l *ViewLoop) zoomAtCursor(steps float64) {
	cam := l.components.Renderer.GetCamera()
	cam.ZoomBy(float32(math.Pow(1.15, steps)), l.cursorX, l.cursorY)
	config.SetTileZoom(cam.Zoom)
}

func (l *ViewLoop) renderFrame(dt float64) {
	l.components.Renderer.Render(l.components.World, dt, l.cursorX, l.cursorY)
	l.window.SwapBuffers()
}
