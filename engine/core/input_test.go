package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputKeyTransitions(t *testing.T) {
	es := NewEventSystem(8)
	pressed := 0
	_, _ = es.Register(EVENT_CODE_KEY_PRESSED, func(EventContext) bool {
		pressed++
		return false
	})
	in := NewInput(es)

	in.ProcessKey(KEY_W, true)
	in.ProcessKey(KEY_W, true) // no state change, no event
	assert.True(t, in.IsKeyDown(KEY_W))
	assert.True(t, in.WasKeyUp(KEY_W))
	assert.Equal(t, 1, pressed)

	in.Update(0.016)
	assert.True(t, in.WasKeyDown(KEY_W))

	in.ProcessKey(KEY_W, false)
	assert.True(t, in.IsKeyUp(KEY_W))
	assert.True(t, in.WasKeyDown(KEY_W))
}

func TestInputMouseDelta(t *testing.T) {
	in := NewInput(nil)

	in.ProcessMouseMove(100, 50)
	dx, dy := in.MouseDelta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)

	in.Update(0.016)
	in.ProcessMouseMove(110, 40)
	dx, dy = in.MouseDelta()
	assert.Equal(t, 10.0, dx)
	assert.Equal(t, -10.0, dy)
}

func TestInputScrollResetsEachFrame(t *testing.T) {
	in := NewInput(nil)
	in.ProcessMouseWheel(1)
	in.ProcessMouseWheel(2)
	assert.Equal(t, 3.0, in.ScrollDelta())
	in.Update(0.016)
	assert.Zero(t, in.ScrollDelta())
}

func TestInputButtons(t *testing.T) {
	in := NewInput(nil)
	in.ProcessButton(BUTTON_LEFT, true)
	assert.True(t, in.IsButtonDown(BUTTON_LEFT))
	assert.True(t, in.WasButtonUp(BUTTON_LEFT))
	in.ProcessButton(BUTTON_MAX_BUTTONS, true) // ignored
}
