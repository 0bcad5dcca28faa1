package systems

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJobSystemValidates(t *testing.T) {
	_, err := NewJobSystem(0, 1)
	assert.ErrorIs(t, err, ErrNoWorkers)
	_, err = NewJobSystem(1, -1)
	assert.ErrorIs(t, err, ErrNegativeChannelSize)
}

func TestJobSystemCallbacksRunOnUpdate(t *testing.T) {
	js, err := NewJobSystem(2, 4)
	require.NoError(t, err)
	defer js.Shutdown()

	var started atomic.Int32
	var results []interface{}
	var failures []error
	require.NoError(t, js.Submit(JobTask{
		Name: "ok",
		OnStart: func() (interface{}, error) {
			started.Add(1)
			return 42, nil
		},
		OnComplete: func(result interface{}) { results = append(results, result) },
		OnFailure:  func(err error) { failures = append(failures, err) },
	}))
	boom := errors.New("boom")
	require.NoError(t, js.Submit(JobTask{
		Name: "fail",
		OnStart: func() (interface{}, error) {
			started.Add(1)
			return nil, boom
		},
		OnComplete: func(result interface{}) { results = append(results, result) },
		OnFailure:  func(err error) { failures = append(failures, err) },
	}))

	require.Eventually(t, func() bool { return started.Load() == 2 }, time.Second, 5*time.Millisecond)

	handled := 0
	require.Eventually(t, func() bool {
		handled += js.Update()
		return handled == 2
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []interface{}{42}, results)
	assert.Equal(t, []error{boom}, failures)
}

func TestJobSystemRejectsAfterShutdown(t *testing.T) {
	js, err := NewJobSystem(1, 0)
	require.NoError(t, err)

	assert.Error(t, js.Submit(JobTask{Name: "no entry"}))
	require.NoError(t, js.Shutdown())
	require.NoError(t, js.Shutdown())

	err = js.Submit(JobTask{Name: "late", OnStart: func() (interface{}, error) { return nil, nil }})
	assert.ErrorIs(t, err, ErrJobSystemClosed)
}
