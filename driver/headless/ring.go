package headless

import (
	"image"
	"sync"
	"time"

	"github.com/gogpu/xr/driver"
)

// ringImage is one slot of the simulated backing array.
type ringImage struct {
	handle uint64
	buf    *image.RGBA
}

// acquisition tracks one acquired-but-unwaited slot.
type acquisition struct {
	index   uint32
	readyAt time.Time
}

// ring is the per-swapchain state machine. Slots move
// free -> acquired -> waited -> free, strictly in FIFO order.
//
// The protocol is single-threaded per swapchain; the mutex only
// protects against a concurrent destroy or enumerate, not against
// interleaved acquire/wait/release from multiple goroutines.
type ring struct {
	mu       sync.Mutex
	info     driver.SwapchainCreateInfo
	latency  time.Duration
	images   []ringImage
	free     []uint32
	acquired []acquisition
	waited   int // slot index of the waited image, -1 when none
}

func newRing(info driver.SwapchainCreateInfo, count uint32, latency time.Duration) *ring {
	r := &ring{
		info:    info,
		latency: latency,
		images:  make([]ringImage, count),
		free:    make([]uint32, count),
		waited:  -1,
	}
	for i := range r.images {
		r.images[i].buf = image.NewRGBA(image.Rect(0, 0, int(info.Width), int(info.Height)))
		r.free[i] = uint32(i)
	}
	return r
}

// acquire hands out the next free slot in ring order.
func (r *ring) acquire() (uint32, driver.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.free) == 0 {
		return 0, driver.ErrorLimitReached
	}
	index := r.free[0]
	r.free = r.free[1:]
	r.acquired = append(r.acquired, acquisition{
		index:   index,
		readyAt: time.Now().Add(r.latency),
	})
	return index, driver.Success
}

// wait blocks until the oldest acquired slot leaves compositor hands.
// timeout is in nanoseconds; zero polls, negative blocks indefinitely.
func (r *ring) wait(timeout int64) driver.Result {
	r.mu.Lock()
	if len(r.acquired) == 0 || r.waited >= 0 {
		r.mu.Unlock()
		return driver.ErrorCallOrderInvalid
	}
	a := r.acquired[0]
	r.mu.Unlock()

	if remaining := time.Until(a.readyAt); remaining > 0 {
		if timeout >= 0 && time.Duration(timeout) < remaining {
			if timeout > 0 {
				time.Sleep(time.Duration(timeout))
			}
			return driver.TimeoutExpired
		}
		time.Sleep(remaining)
	}

	r.mu.Lock()
	r.acquired = r.acquired[1:]
	r.waited = int(a.index)
	r.mu.Unlock()
	return driver.Success
}

// release composites the waited image onto the display and returns the
// slot to the free list. The display serializes the composite itself;
// rings of other swapchains may be releasing at the same time.
func (r *ring) release(dst *display) driver.Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.waited < 0 {
		return driver.ErrorCallOrderInvalid
	}
	dst.composite(r.images[r.waited].buf)
	r.free = append(r.free, uint32(r.waited))
	r.waited = -1
	return driver.Success
}

// enumerate reports the fixed backing array. A nil slice queries the
// count; an undersized slice is a validation failure, never a
// truncation.
func (r *ring) enumerate(images []driver.ImageDescriptor) (uint32, driver.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := uint32(len(r.images))
	if images == nil {
		return count, driver.Success
	}
	if uint32(len(images)) < count {
		return 0, driver.ErrorValidationFailure
	}
	for i := range r.images {
		images[i] = driver.ImageDescriptor{
			Type:   driver.StructureTypeImageDescriptor,
			Handle: r.images[i].handle,
			Format: r.info.Format,
			Width:  r.info.Width,
			Height: r.info.Height,
		}
	}
	return count, driver.Success
}
