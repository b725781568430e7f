package deadpool

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestPoolClosedError(t *testing.T) {
	t.Run("RegularErrorIsNotPoolClosed", func(t *testing.T) {
		assert.False(t, IsPoolClosedError(errors.New("err")))
	})
	t.Run("NilErrorIsNotPoolClosed", func(t *testing.T) {
		assert.False(t, IsPoolClosedError(nil))
	})
	t.Run("NewPoolClosedError", func(t *testing.T) {
		err := NewPoolClosedError("err")
		assert.True(t, IsPoolClosedError(err))
		assert.Equal(t, "err", err.Error())
	})
	t.Run("NewPoolClosedErrorf", func(t *testing.T) {
		err := NewPoolClosedErrorf("pool %s", "one")
		assert.True(t, IsPoolClosedError(err))
		assert.Equal(t, "pool one", err.Error())
	})
	t.Run("MakePoolClosedError", func(t *testing.T) {
		assert.True(t, IsPoolClosedError(MakePoolClosedError(errors.New("err"))))
		assert.NoError(t, MakePoolClosedError(nil))
	})
	t.Run("WrappedPoolClosedError", func(t *testing.T) {
		err := errors.Wrap(NewPoolClosedError("err"), "submitting")
		assert.True(t, IsPoolClosedError(err))
	})
}

func TestJobPanicError(t *testing.T) {
	t.Run("NilCause", func(t *testing.T) {
		assert.NoError(t, NewJobPanicError(1, nil))
		assert.False(t, IsJobPanicError(nil))
	})
	t.Run("RegularErrorIsNotJobPanic", func(t *testing.T) {
		assert.False(t, IsJobPanicError(errors.New("err")))
	})
	t.Run("NewJobPanicError", func(t *testing.T) {
		cause := errors.New("boom")
		err := NewJobPanicError(3, cause)
		assert.True(t, IsJobPanicError(err))
		assert.Contains(t, err.Error(), "worker 3")
		assert.Contains(t, err.Error(), "boom")
		assert.Equal(t, cause, errors.Cause(err))
	})
	t.Run("WrappedJobPanicError", func(t *testing.T) {
		err := errors.Wrap(NewJobPanicError(0, errors.New("boom")), "closing")
		assert.True(t, IsJobPanicError(err))
	})
	t.Run("PanicIsNotPoolClosed", func(t *testing.T) {
		assert.False(t, IsPoolClosedError(NewJobPanicError(0, errors.New("boom"))))
	})
	t.Run("CollectedJobPanicErrors", func(t *testing.T) {
		err := MakeJobPanicErrors([]error{
			NewJobPanicError(0, errors.New("first")),
			nil,
			NewJobPanicError(2, errors.New("second")),
		})
		assert.True(t, IsJobPanicError(err))
		assert.False(t, IsPoolClosedError(err))
		assert.Contains(t, err.Error(), "first")
		assert.Contains(t, err.Error(), "second")

		collected, ok := err.(interface{ Errors() []error })
		if assert.True(t, ok) {
			assert.Len(t, collected.Errors(), 2)
		}
	})
	t.Run("WrappedCollectedJobPanicErrors", func(t *testing.T) {
		err := errors.Wrap(MakeJobPanicErrors([]error{NewJobPanicError(1, errors.New("boom"))}), "closing")
		assert.True(t, IsJobPanicError(err))
	})
	t.Run("EmptyCollectionIsNil", func(t *testing.T) {
		assert.NoError(t, MakeJobPanicErrors(nil))
		assert.NoError(t, MakeJobPanicErrors([]error{nil}))
	})
	t.Run("CollectionWithoutPanicsIsNotJobPanic", func(t *testing.T) {
		assert.False(t, IsJobPanicError(MakeJobPanicErrors([]error{errors.New("other")})))
	})
}
