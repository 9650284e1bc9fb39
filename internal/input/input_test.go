package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestArrowsAndWASDShareActions(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyUp, glfw.Press)
	if !im.IsActive(ActionPanUp) {
		t.Fatal("arrow up should pan up")
	}
	im.HandleKeyEvent(glfw.KeyUp, glfw.Release)
	im.HandleKeyEvent(glfw.KeyW, glfw.Press)
	if !im.IsActive(ActionPanUp) {
		t.Fatal("W should pan up")
	}
}

func TestEdgeDetection(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyH, glfw.Press)
	if !im.JustPressed(ActionToggleHUD) {
		t.Fatal("expected JustPressed after press")
	}
	im.PostUpdate()
	if im.JustPressed(ActionToggleHUD) {
		t.Error("JustPressed should reset after PostUpdate")
	}
	if !im.IsActive(ActionToggleHUD) {
		t.Error("key is still held")
	}
	im.HandleKeyEvent(glfw.KeyH, glfw.Repeat)
	if im.JustPressed(ActionToggleHUD) {
		t.Error("repeat is not a new press")
	}
	im.HandleKeyEvent(glfw.KeyH, glfw.Release)
	if !im.JustReleased(ActionToggleHUD) || im.IsActive(ActionToggleHUD) {
		t.Error("expected release edge")
	}
}

func TestUnbindAndOutOfRange(t *testing.T) {
	im := NewInputManager()
	im.UnbindKey(glfw.KeyEscape)
	im.HandleKeyEvent(glfw.KeyEscape, glfw.Press)
	if im.IsActive(ActionQuit) {
		t.Error("unbound key still triggers its action")
	}
	im.BindKey(glfw.KeyX, ActionCount)
	if im.IsActive(ActionCount) || im.JustPressed(-1) {
		t.Error("out-of-range actions must read false")
	}
	im.HandleMouseButtonEvent(glfw.MouseButtonLeft, glfw.Press)
	if !im.IsActive(ActionMouseDrag) {
		t.Error("left button should start a drag")
	}
}
