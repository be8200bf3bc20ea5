package softui

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"os"

	"golang.org/x/sys/unix"

	"github.com/dkolbly/layershell/wl"
)

// Presenter accepts a finished software frame. The renderer hands its
// canvas to the rendering context through this instead of GL calls.
type Presenter interface {
	Present(frame *image.RGBA) error
}

// Swapchain is a software rendering context over a wl_shm buffer. It
// satisfies the windowing system's context contract: Present stages a
// frame into shared memory and SwapBuffers commits it to the surface.
type Swapchain struct {
	shm     *wl.Shm
	surface *wl.Surface

	width, height uint32
	file          *os.File
	data          []byte
	buffer        *wl.Buffer
	staging       *image.RGBA
}

// NewSwapchain allocates one ARGB8888 buffer of the given size. It is
// the GL factory for software toolkits.
func NewSwapchain(shm *wl.Shm, surface *wl.Surface, width, height uint32) (*Swapchain, error) {
	if shm == nil {
		return nil, errors.New("softui: compositor has no wl_shm global")
	}
	if surface == nil || width == 0 || height == 0 {
		return nil, errors.New("softui: invalid swapchain target")
	}
	sc := &Swapchain{shm: shm, surface: surface}
	if err := sc.allocate(width, height); err != nil {
		return nil, err
	}
	return sc, nil
}

func (sc *Swapchain) allocate(width, height uint32) error {
	stride := int32(width) * 4
	size := stride * int32(height)

	file, err := tempFile(int64(size))
	if err != nil {
		return fmt.Errorf("softui: shm backing file: %w", err)
	}
	data, err := unix.Mmap(int(file.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		file.Close()
		return fmt.Errorf("softui: mmap: %w", err)
	}

	pool, err := sc.shm.CreatePool(file.Fd(), size)
	if err != nil {
		unix.Munmap(data)
		file.Close()
		return fmt.Errorf("softui: create pool: %w", err)
	}
	buffer, err := pool.CreateBuffer(0, int32(width), int32(height), stride, wl.ShmFormatArgb8888)
	if err != nil {
		unix.Munmap(data)
		file.Close()
		return fmt.Errorf("softui: create buffer: %w", err)
	}
	// the buffer keeps the pool's storage alive
	pool.Destroy()

	sc.width, sc.height = width, height
	sc.file = file
	sc.data = data
	sc.buffer = buffer
	sc.staging = &image.RGBA{
		Pix:    data,
		Stride: int(stride),
		Rect:   image.Rect(0, 0, int(width), int(height)),
	}
	return nil
}

func (sc *Swapchain) release() {
	if sc.buffer != nil {
		sc.buffer.Destroy()
		sc.buffer = nil
	}
	if sc.data != nil {
		unix.Munmap(sc.data)
		sc.data = nil
	}
	if sc.file != nil {
		sc.file.Close()
		sc.file = nil
	}
	sc.staging = nil
}

// EnsureCurrent is a no-op; shared memory has no thread affinity.
func (sc *Swapchain) EnsureCurrent() error { return nil }

// Present copies the frame into the shm buffer, converting to the
// byte order ARGB8888 wants.
func (sc *Swapchain) Present(frame *image.RGBA) error {
	if sc.staging == nil {
		return errors.New("softui: swapchain released")
	}
	draw.Draw(sc.staging, sc.staging.Rect, frame, frame.Rect.Min, draw.Src)
	bgra(sc.staging.Pix)
	return nil
}

// SwapBuffers attaches the staged buffer and commits the surface.
func (sc *Swapchain) SwapBuffers() error {
	if err := sc.surface.Attach(sc.buffer, 0, 0); err != nil {
		return err
	}
	if err := sc.surface.Damage(0, 0, int32(sc.width), int32(sc.height)); err != nil {
		return err
	}
	return sc.surface.Commit()
}

// Resize replaces the buffer with one of the new size.
func (sc *Swapchain) Resize(width, height uint32) error {
	if width == 0 || height == 0 {
		return errors.New("softui: resize to zero size")
	}
	if width == sc.width && height == sc.height {
		return nil
	}
	sc.release()
	return sc.allocate(width, height)
}

func (sc *Swapchain) Size() (uint32, uint32) {
	return sc.width, sc.height
}

func (sc *Swapchain) Destroy() {
	sc.release()
}

// tempFile backs a shm pool with an unlinked file in the runtime dir.
func tempFile(size int64) (*os.File, error) {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	file, err := os.CreateTemp(dir, "layershell-shm-")
	if err != nil {
		return nil, err
	}
	if err := file.Truncate(size); err != nil {
		file.Close()
		return nil, err
	}
	if err := os.Remove(file.Name()); err != nil {
		file.Close()
		return nil, err
	}
	return file, nil
}

// bgra swaps the red and blue channels in place. ARGB8888 is BGRA in
// little endian memory order.
func bgra(p []byte) {
	for i := 0; i+3 < len(p); i += 4 {
		p[i], p[i+2] = p[i+2], p[i]
	}
}
