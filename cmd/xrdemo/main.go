// Command xrdemo drives a swapchain through the headless compositor
// and dumps the virtual display to a PNG.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"

	"github.com/gogpu/xr"
	"github.com/gogpu/xr/backend"
	"github.com/gogpu/xr/driver"
	"github.com/gogpu/xr/driver/headless"
)

func main() {
	var (
		width  = flag.Int("width", 512, "swapchain image width")
		height = flag.Int("height", 512, "swapchain image height")
		frames = flag.Int("frames", 10, "number of frames to render")
		output = flag.String("output", "xrdemo.png", "output file for the virtual display")
	)
	flag.Parse()

	drv, ok := driver.Get(headless.DriverName).(*headless.Driver)
	if !ok {
		log.Fatal("headless driver not registered")
	}

	inst, err := xr.CreateInstance(&xr.InstanceOptions{
		Driver:           headless.DriverName,
		EnableDebugUtils: true,
	})
	if err != nil {
		log.Fatalf("Failed to create instance: %v", err)
	}
	defer inst.Destroy()

	session := inst.NewSession()
	sc, err := session.CreateSwapchain(&xr.SwapchainCreateInfo{
		Width:      uint32(*width),
		Height:     uint32(*height),
		ImageCount: 3,
	})
	if err != nil {
		log.Fatalf("Failed to create swapchain: %v", err)
	}
	defer sc.Destroy()

	if err := sc.SetName("xrdemo"); err != nil {
		log.Fatalf("Failed to name swapchain: %v", err)
	}

	descs, err := sc.EnumerateImages()
	if err != nil {
		log.Fatalf("Failed to enumerate images: %v", err)
	}
	log.Printf("Swapchain ring: %d images of %dx%d", len(descs), *width, *height)

	images, err := backend.WrapImages(drv.Binding(), descs)
	if err != nil {
		log.Fatalf("Failed to wrap images: %v", err)
	}

	for frame := 0; frame < *frames; frame++ {
		index, err := sc.AcquireImage()
		if err != nil {
			log.Fatalf("Frame %d: acquire failed: %v", frame, err)
		}
		ready, err := sc.WaitImage(xr.InfiniteTimeout)
		if err != nil {
			log.Fatalf("Frame %d: wait failed: %v", frame, err)
		}
		if !ready {
			log.Fatalf("Frame %d: infinite wait reported a timeout", frame)
		}

		drawFrame(images[index].(*headless.Image).RGBA(), frame, *frames)

		if err := sc.ReleaseImage(); err != nil {
			log.Fatalf("Frame %d: release failed: %v", frame, err)
		}
		log.Printf("Frame %d rendered to image %d", frame, index)
	}

	if err := savePNG(*output, drv.Display()); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Display saved to %s", *output)
}

// drawFrame fills buf with a gradient that sweeps as frames advance.
func drawFrame(buf *image.RGBA, frame, total int) {
	bounds := buf.Bounds()
	phase := float64(frame) / float64(total)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			fx := float64(x-bounds.Min.X) / float64(bounds.Dx())
			fy := float64(y-bounds.Min.Y) / float64(bounds.Dy())
			buf.SetRGBA(x, y, color.RGBA{
				R: uint8(255 * fx),
				G: uint8(255 * fy),
				B: uint8(255 * phase),
				A: 255,
			})
		}
	}
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
