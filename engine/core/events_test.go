package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventFireStopsWhenHandled(t *testing.T) {
	es := NewEventSystem(8)
	var calls []string
	_, err := es.Register(EVENT_CODE_KEY_PRESSED, func(EventContext) bool {
		calls = append(calls, "first")
		return true
	})
	require.NoError(t, err)
	_, err = es.Register(EVENT_CODE_KEY_PRESSED, func(EventContext) bool {
		calls = append(calls, "second")
		return false
	})
	require.NoError(t, err)

	assert.True(t, es.Fire(EventContext{Type: EVENT_CODE_KEY_PRESSED}))
	assert.Equal(t, []string{"first"}, calls)
	assert.False(t, es.Fire(EventContext{Type: EVENT_CODE_RESIZED}))
}

func TestEventUnregister(t *testing.T) {
	es := NewEventSystem(8)
	fired := 0
	id, err := es.Register(EVENT_CODE_APPLICATION_QUIT, func(EventContext) bool {
		fired++
		return false
	})
	require.NoError(t, err)

	assert.True(t, es.Unregister(EVENT_CODE_APPLICATION_QUIT, id))
	assert.False(t, es.Unregister(EVENT_CODE_APPLICATION_QUIT, id))
	es.Fire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT})
	assert.Equal(t, 0, fired)
}

func TestEventPostDispatchesInOrder(t *testing.T) {
	es := NewEventSystem(4)
	var got []uint32
	_, err := es.Register(EVENT_CODE_RESIZED, func(ctx EventContext) bool {
		got = append(got, ctx.Data.(*SystemEvent).WindowWidth)
		return false
	})
	require.NoError(t, err)

	es.Post(EventContext{Type: EVENT_CODE_RESIZED, Data: &SystemEvent{WindowWidth: 1}})
	es.Post(EventContext{Type: EVENT_CODE_RESIZED, Data: &SystemEvent{WindowWidth: 2}})
	assert.Empty(t, got)

	assert.Equal(t, 2, es.Dispatch())
	assert.Equal(t, []uint32{1, 2}, got)
	assert.Equal(t, 0, es.Dispatch())
}

func TestEventRegisterRejectsNilCallback(t *testing.T) {
	es := NewEventSystem(0)
	_, err := es.Register(EVENT_CODE_KEY_PRESSED, nil)
	assert.Error(t, err)
}
