package xr

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/gogpu/xr/driver"
)

// InfiniteTimeout makes WaitImage block until the image is ready.
const InfiniteTimeout time.Duration = math.MaxInt64

// Swapchain exclusively owns one compositor-side image ring.
//
// The handle is valid from successful creation until Destroy returns;
// handles are never copied between Swapchain values. The owning
// session, and through it the instance, must stay alive for the
// swapchain's lifetime.
//
// A Swapchain is not safe for unsynchronized concurrent use: the FIFO
// ordering guarantee of acquire/wait/release only holds under
// single-goroutine or externally serialized access. Distinct
// swapchains are independent.
type Swapchain struct {
	session   *Session
	handle    driver.Swapchain
	destroyed atomic.Bool
}

// SwapchainFromRaw adopts an already-valid swapchain handle without
// issuing a create call. The caller must guarantee that handle is a
// live swapchain belonging to session's driver; handing over anything
// else puts the driver boundary in an undefined state that no error
// return can report.
//
// The returned Swapchain owns the handle and will destroy it.
func SwapchainFromRaw(session *Session, handle driver.Swapchain) *Swapchain {
	return &Swapchain{session: session, handle: handle}
}

// Raw returns the underlying driver handle. The handle stays owned by
// the swapchain; it is only useful for passing back through driver
// level APIs.
func (sc *Swapchain) Raw() driver.Swapchain { return sc.handle }

// Session returns the owning session.
func (sc *Swapchain) Session() *Session { return sc.session }

// Destroy destroys the swapchain, invoking the driver's destroy entry
// point exactly once no matter how often Destroy is called.
//
// Destruction is unconditional: images still acquired are abandoned,
// not reclaimed first. That sharp edge belongs to the underlying
// protocol and is deliberately preserved. A destroy failure from the
// driver is logged and swallowed; once teardown has begun there is no
// recovery action left to surface it to.
func (sc *Swapchain) Destroy() {
	if !sc.destroyed.CompareAndSwap(false, true) {
		return
	}
	if res := sc.tab().DestroySwapchain(sc.handle); res.IsError() {
		Logger().Warn("xr: swapchain destroy failed",
			"handle", uint64(sc.handle),
			"result", res.String())
	}
}

// AcquireImage asks the driver for the index of the next image to
// render to. A non-error return is an index into the ring's backing
// array, as reported by EnumerateImages.
//
// Acquiring does not make the image usable; call WaitImage before
// rendering to it. The driver bounds the number of images that may be
// outstanding at once and reports ErrorLimitReached past that bound;
// xr propagates the report rather than pre-empting it.
func (sc *Swapchain) AcquireImage() (uint32, error) {
	if sc.destroyed.Load() {
		return 0, ErrSwapchainDestroyed
	}
	info := driver.ImageAcquireInfo{Type: driver.StructureTypeImageAcquireInfo}
	index, res := sc.tab().AcquireImage(sc.handle, &info)
	if err := driverError("acquire image", res); err != nil {
		return 0, err
	}
	Logger().Debug("xr: image acquired", "handle", uint64(sc.handle), "index", index)
	return index, nil
}

// WaitImage blocks until the oldest acquired-but-unwaited image is no
// longer being read by the compositor, or until timeout elapses.
// A zero timeout polls; InfiniteTimeout (or any negative value) blocks
// indefinitely.
//
// WaitImage returns (true, nil) when the image is ready and
// (false, nil) when the timeout expired first. A timeout is not a
// failure; the caller decides whether to wait again or abandon the
// frame.
//
// Precondition, caller-enforced: exactly one image is outstanding in
// the acquired state. Waiting with none outstanding, or waiting again
// before releasing a previous wait's image, violates the protocol;
// drivers typically report ErrorCallOrderInvalid but the underlying
// contract does not promise well-defined behavior. xr does not track
// protocol state to detect this itself.
func (sc *Swapchain) WaitImage(timeout time.Duration) (bool, error) {
	if sc.destroyed.Load() {
		return false, ErrSwapchainDestroyed
	}
	t := int64(timeout)
	if timeout < 0 || timeout == InfiniteTimeout {
		t = -1
	}
	info := driver.ImageWaitInfo{Type: driver.StructureTypeImageWaitInfo, Timeout: t}
	res := sc.tab().WaitImage(sc.handle, &info)
	if res == driver.TimeoutExpired {
		Logger().Debug("xr: image wait timed out", "handle", uint64(sc.handle))
		return false, nil
	}
	if err := driverError("wait image", res); err != nil {
		return false, err
	}
	return true, nil
}

// ReleaseImage returns the oldest waited image to the compositor's
// ring, making its slot acquirable again.
//
// Precondition, caller-enforced: the most recent WaitImage on this
// swapchain returned (true, nil) and its image has not been released
// yet. The same caller-responsibility contract as WaitImage applies.
func (sc *Swapchain) ReleaseImage() error {
	if sc.destroyed.Load() {
		return ErrSwapchainDestroyed
	}
	info := driver.ImageReleaseInfo{Type: driver.StructureTypeImageReleaseInfo}
	if err := driverError("release image", sc.tab().ReleaseImage(sc.handle, &info)); err != nil {
		return err
	}
	Logger().Debug("xr: image released", "handle", uint64(sc.handle))
	return nil
}

// EnumerateImages returns descriptors for the fixed backing array the
// ring cycles through. Indices returned by AcquireImage index into
// this slice. Use a graphics binding from the backend package to turn
// descriptors into API-level textures.
func (sc *Swapchain) EnumerateImages() ([]driver.ImageDescriptor, error) {
	if sc.destroyed.Load() {
		return nil, ErrSwapchainDestroyed
	}

	count, res := sc.tab().EnumerateImages(sc.handle, nil)
	if err := driverError("enumerate images", res); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	images := make([]driver.ImageDescriptor, count)
	written, res := sc.tab().EnumerateImages(sc.handle, images)
	if err := driverError("enumerate images", res); err != nil {
		return nil, err
	}
	if written != count {
		return nil, fmt.Errorf("%w: %d then %d", ErrImageCountChanged, count, written)
	}
	return images, nil
}

// SetName tags the swapchain with a human-readable name for diagnostic
// tools. Naming requires the debug-utils capability to have been
// negotiated at instance creation; without it SetName is a silent
// no-op, never an error, since a missing diagnostic annotation must
// not change application behavior. Repeated calls replace the name.
func (sc *Swapchain) SetName(name string) error {
	if sc.destroyed.Load() {
		return ErrSwapchainDestroyed
	}
	if !sc.session.instance.exts.DebugUtils {
		return nil
	}
	namer, ok := sc.tab().(driver.DebugNamer)
	if !ok {
		return nil
	}
	info := driver.DebugObjectNameInfo{
		Type:         driver.StructureTypeDebugObjectNameInfo,
		ObjectType:   driver.ObjectTypeSwapchain,
		ObjectHandle: uint64(sc.handle),
		ObjectName:   name,
	}
	return driverError("set name", namer.SetDebugObjectName(&info))
}

func (sc *Swapchain) tab() driver.ProcTable {
	return sc.session.instance.tab
}
