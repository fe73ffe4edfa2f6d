package headless

import (
	"image"
	"sync"

	xdraw "golang.org/x/image/draw"
)

// display is the composite target shared by every ring of the table.
// Distinct swapchains release independently, so the composite is
// serialized here rather than on the per-swapchain lock.
type display struct {
	mu  sync.Mutex
	img *image.RGBA
}

func newDisplay(width, height int) *display {
	return &display{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// composite scales buf over the full display.
func (d *display) composite(buf *image.RGBA) {
	d.mu.Lock()
	defer d.mu.Unlock()
	xdraw.ApproxBiLinear.Scale(d.img, d.img.Bounds(), buf, buf.Bounds(), xdraw.Src, nil)
}

// snapshot returns a copy of the current display contents. The copy
// never races a later composite.
func (d *display) snapshot() *image.RGBA {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := image.NewRGBA(d.img.Rect)
	copy(out.Pix, d.img.Pix)
	return out
}
