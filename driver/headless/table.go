package headless

import (
	"image"
	"sync"

	"github.com/gogpu/xr/driver"
)

// table implements driver.ProcTable and driver.DebugNamer over a set
// of simulated rings.
type table struct {
	mu         sync.Mutex
	opts       Options
	closed     bool
	nextHandle uint64
	chains     map[driver.Swapchain]*ring
	buffers    map[uint64]*image.RGBA // image handle -> backing store
	destroys   map[driver.Swapchain]int
	names      map[driver.Swapchain]string
	display    *display
}

var (
	_ driver.ProcTable  = (*table)(nil)
	_ driver.DebugNamer = (*table)(nil)
)

func newTable(opts Options) *table {
	return &table{
		opts:     opts,
		chains:   make(map[driver.Swapchain]*ring),
		buffers:  make(map[uint64]*image.RGBA),
		destroys: make(map[driver.Swapchain]int),
		names:    make(map[driver.Swapchain]string),
		display:  newDisplay(opts.DisplayWidth, opts.DisplayHeight),
	}
}

func (t *table) close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	t.chains = make(map[driver.Swapchain]*ring)
	t.buffers = make(map[uint64]*image.RGBA)
}

// CreateSwapchain allocates a ring of CPU image buffers.
func (t *table) CreateSwapchain(info *driver.SwapchainCreateInfo) (driver.Swapchain, driver.Result) {
	if info == nil || info.Type != driver.StructureTypeSwapchainCreateInfo {
		return 0, driver.ErrorValidationFailure
	}
	if info.Width == 0 || info.Height == 0 {
		return 0, driver.ErrorValidationFailure
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0, driver.ErrorRuntimeFailure
	}

	count := info.ImageCount
	if count == 0 {
		count = t.opts.ImageCount
	}

	r := newRing(*info, count, t.opts.PresentLatency)
	for i := range r.images {
		t.nextHandle++
		r.images[i].handle = t.nextHandle
		t.buffers[t.nextHandle] = r.images[i].buf
	}

	t.nextHandle++
	sc := driver.Swapchain(t.nextHandle)
	t.chains[sc] = r
	return sc, driver.Success
}

// DestroySwapchain tears the ring down unconditionally. Outstanding
// acquisitions are abandoned, never reclaimed.
func (t *table) DestroySwapchain(sc driver.Swapchain) driver.Result {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.chains[sc]
	if !ok {
		return driver.ErrorHandleInvalid
	}
	for i := range r.images {
		delete(t.buffers, r.images[i].handle)
	}
	delete(t.chains, sc)
	t.destroys[sc]++
	return driver.Success
}

func (t *table) AcquireImage(sc driver.Swapchain, info *driver.ImageAcquireInfo) (uint32, driver.Result) {
	if info != nil && info.Type != driver.StructureTypeImageAcquireInfo {
		return 0, driver.ErrorValidationFailure
	}
	r, res := t.lookup(sc)
	if res.IsError() {
		return 0, res
	}
	return r.acquire()
}

func (t *table) WaitImage(sc driver.Swapchain, info *driver.ImageWaitInfo) driver.Result {
	if info == nil || info.Type != driver.StructureTypeImageWaitInfo {
		return driver.ErrorValidationFailure
	}
	r, res := t.lookup(sc)
	if res.IsError() {
		return res
	}
	return r.wait(info.Timeout)
}

func (t *table) ReleaseImage(sc driver.Swapchain, info *driver.ImageReleaseInfo) driver.Result {
	if info != nil && info.Type != driver.StructureTypeImageReleaseInfo {
		return driver.ErrorValidationFailure
	}
	r, res := t.lookup(sc)
	if res.IsError() {
		return res
	}
	return r.release(t.display)
}

func (t *table) EnumerateImages(sc driver.Swapchain, images []driver.ImageDescriptor) (uint32, driver.Result) {
	r, res := t.lookup(sc)
	if res.IsError() {
		return 0, res
	}
	return r.enumerate(images)
}

// SetDebugObjectName implements driver.DebugNamer. Last write wins.
func (t *table) SetDebugObjectName(info *driver.DebugObjectNameInfo) driver.Result {
	if info == nil || info.Type != driver.StructureTypeDebugObjectNameInfo {
		return driver.ErrorValidationFailure
	}
	if info.ObjectType != driver.ObjectTypeSwapchain {
		return driver.ErrorValidationFailure
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	sc := driver.Swapchain(info.ObjectHandle)
	if _, ok := t.chains[sc]; !ok {
		return driver.ErrorHandleInvalid
	}
	t.names[sc] = info.ObjectName
	return driver.Success
}

func (t *table) lookup(sc driver.Swapchain) (*ring, driver.Result) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.chains[sc]
	if !ok {
		return nil, driver.ErrorHandleInvalid
	}
	return r, driver.Success
}

func (t *table) destroyCalls(sc driver.Swapchain) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.destroys[sc]
}

func (t *table) objectName(sc driver.Swapchain) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.names[sc]
}

func (t *table) imageBuffer(handle uint64) *image.RGBA {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buffers[handle]
}
