package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const (
	shortDelay = 20 * time.Millisecond
	settle     = 150 * time.Millisecond
)

func TestDebouncerCollapsesBursts(t *testing.T) {
	d := NewDebouncer(shortDelay)

	var fired atomic.Int64
	var last atomic.Int64
	for i := 1; i <= 5; i++ {
		version := int64(i)
		d.Schedule("uri", func() {
			fired.Add(1)
			last.Store(version)
		})
	}

	time.Sleep(settle)
	assert.Equal(t, int64(1), fired.Load())
	assert.Equal(t, int64(5), last.Load())
}

func TestDebouncerRunsAfterDelay(t *testing.T) {
	d := NewDebouncer(shortDelay)

	var fired atomic.Int64
	d.Schedule("uri", func() { fired.Add(1) })

	assert.Equal(t, int64(0), fired.Load())
	time.Sleep(settle)
	assert.Equal(t, int64(1), fired.Load())
}

func TestDebouncerKeysAreIndependent(t *testing.T) {
	d := NewDebouncer(shortDelay)

	var a, b atomic.Int64
	d.Schedule("a", func() { a.Add(1) })
	d.Schedule("b", func() { b.Add(1) })

	time.Sleep(settle)
	assert.Equal(t, int64(1), a.Load())
	assert.Equal(t, int64(1), b.Load())
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(shortDelay)

	var fired atomic.Int64
	d.Schedule("uri", func() { fired.Add(1) })
	d.Cancel("uri")

	time.Sleep(settle)
	assert.Equal(t, int64(0), fired.Load())
}

func TestDebouncerCancelAll(t *testing.T) {
	d := NewDebouncer(shortDelay)

	var fired atomic.Int64
	d.Schedule("a", func() { fired.Add(1) })
	d.Schedule("b", func() { fired.Add(1) })
	d.CancelAll()

	time.Sleep(settle)
	assert.Equal(t, int64(0), fired.Load())
}

func TestDebouncerRescheduleAfterFire(t *testing.T) {
	d := NewDebouncer(shortDelay)

	var fired atomic.Int64
	d.Schedule("uri", func() { fired.Add(1) })
	time.Sleep(settle)
	d.Schedule("uri", func() { fired.Add(1) })
	time.Sleep(settle)

	assert.Equal(t, int64(2), fired.Load())
}
