package config

import "sync"

// ViewSettings holds viewer and preview configuration
type ViewSettings struct {
	mu           sync.RWMutex
	tileZoom     float32 // screen pixels per tile
	panSpeed     float32 // tiles per second at zoom 16
	previewScale int     // output pixels per tile
	fpsLimit     int     // 0 means uncapped
}

var globalViewSettings = &ViewSettings{
	tileZoom:     16,
	panSpeed:     24,
	previewScale: 4,
	fpsLimit:     60,
}

const (
	MinTileZoom = 2
	MaxTileZoom = 64
)

// GetTileZoom returns the current zoom in pixels per tile
func GetTileZoom() float32 {
	globalViewSettings.mu.RLock()
	defer globalViewSettings.mu.RUnlock()
	return globalViewSettings.tileZoom
}

// SetTileZoom sets the zoom in pixels per tile
func SetTileZoom(zoom float32) {
	globalViewSettings.mu.Lock()
	defer globalViewSettings.mu.Unlock()

	// Clamp to reasonable values
	if !(zoom >= MinTileZoom) {
		zoom = MinTileZoom
	}
	if zoom > MaxTileZoom {
		zoom = MaxTileZoom
	}
	globalViewSettings.tileZoom = zoom
}

// GetPanSpeed returns the camera pan speed
func GetPanSpeed() float32 {
	globalViewSettings.mu.RLock()
	defer globalViewSettings.mu.RUnlock()
	return globalViewSettings.panSpeed
}

// SetPanSpeed sets the camera pan speed
func SetPanSpeed(speed float32) {
	globalViewSettings.mu.Lock()
	defer globalViewSettings.mu.Unlock()
	if speed < 1 {
		speed = 1
	}
	globalViewSettings.panSpeed = speed
}

// GetPreviewScale returns the preview output pixels per tile
func GetPreviewScale() int {
	globalViewSettings.mu.RLock()
	defer globalViewSettings.mu.RUnlock()
	return globalViewSettings.previewScale
}

// SetPreviewScale sets the preview output pixels per tile
func SetPreviewScale(scale int) {
	globalViewSettings.mu.Lock()
	defer globalViewSettings.mu.Unlock()
	if scale < 1 {
		scale = 1
	}
	if scale > 16 {
		scale = 16
	}
	globalViewSettings.previewScale = scale
}

// GetFPSLimit returns the viewer frame cap
func GetFPSLimit() int {
	globalViewSettings.mu.RLock()
	defer globalViewSettings.mu.RUnlock()
	return globalViewSettings.fpsLimit
}

// SetFPSLimit sets the viewer frame cap, 0 for uncapped
func SetFPSLimit(limit int) {
	globalViewSettings.mu.Lock()
	defer globalViewSettings.mu.Unlock()
	globalViewSettings.fpsLimit = max(limit, 0)
}
