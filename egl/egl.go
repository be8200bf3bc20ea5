// Package egl bootstraps a GPU rendering context on a Wayland surface.
//
// The context wraps EGL's implicit thread-current state behind
// EnsureCurrent so nothing else in the process needs to reason about
// ambient EGL state. A Context is created once, after the surface's
// first valid configure, and lives until the windowing system is torn
// down.
package egl

/*
#cgo pkg-config: egl wayland-egl
#cgo LDFLAGS: -lEGL -lwayland-egl
#include <EGL/egl.h>
#include <wayland-egl.h>
*/
import "C"

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidInput reports a nil native handle or a zero dimension.
	// Degenerate sizes are rejected, never clamped.
	ErrInvalidInput = errors.New("egl: invalid input")

	// ErrDisplayInit reports a failure to resolve or initialize the
	// EGL display binding for the Wayland connection.
	ErrDisplayInit = errors.New("egl: display initialization failed")

	// ErrNoCompatibleConfig reports that the driver offered no pixel
	// format matching the requested template.
	ErrNoCompatibleConfig = errors.New("egl: no compatible configuration found")

	// ErrContextCreation reports a failure to create the GL context.
	ErrContextCreation = errors.New("egl: context creation failed")

	// ErrSurfaceCreation reports a failure to create the drawable
	// window surface.
	ErrSurfaceCreation = errors.New("egl: window surface creation failed")

	// ErrContextActivation reports a failed eglMakeCurrent. This
	// usually indicates a problem with the graphics drivers.
	ErrContextActivation = errors.New("egl: unable to activate context")
)

// Context owns the EGL context and its drawable surface. It satisfies
// toolkit.GL.
type Context struct {
	display C.EGLDisplay
	config  C.EGLConfig
	context C.EGLContext
	surface C.EGLSurface
	window  *C.struct_wl_egl_window

	width   uint32
	height  uint32
	current bool
}

// NewContext builds a rendering context for the given native display
// and surface handles, with a drawable sized to width by height. Both
// handles must come from the live Wayland connection; both dimensions
// must be strictly positive. The context is left current on the
// calling thread.
func NewContext(display, surface unsafe.Pointer, width, height uint32) (*Context, error) {
	if display == nil {
		return nil, fmt.Errorf("%w: nil display handle", ErrInvalidInput)
	}
	if surface == nil {
		return nil, fmt.Errorf("%w: nil surface handle", ErrInvalidInput)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidInput, width, height)
	}

	dpy := C.eglGetDisplay(C.EGLNativeDisplayType(display))
	if dpy == C.EGLDisplay(C.EGL_NO_DISPLAY) {
		return nil, fmt.Errorf("%w: no display for native handle", ErrDisplayInit)
	}
	if C.eglInitialize(dpy, nil, nil) != C.EGL_TRUE {
		return nil, fmt.Errorf("%w: eglInitialize: %s", ErrDisplayInit, eglErrorString())
	}
	if C.eglBindAPI(C.EGL_OPENGL_ES_API) != C.EGL_TRUE {
		return nil, fmt.Errorf("%w: eglBindAPI: %s", ErrDisplayInit, eglErrorString())
	}

	cfg, err := chooseConfig(dpy)
	if err != nil {
		return nil, err
	}

	ctxAttribs := [...]C.EGLint{
		C.EGL_CONTEXT_CLIENT_VERSION, 2,
		C.EGL_NONE,
	}
	ctx := C.eglCreateContext(dpy, cfg, C.EGLContext(C.EGL_NO_CONTEXT), &ctxAttribs[0])
	if ctx == C.EGLContext(C.EGL_NO_CONTEXT) {
		return nil, fmt.Errorf("%w: %s", ErrContextCreation, eglErrorString())
	}

	win := C.wl_egl_window_create((*C.struct_wl_surface)(surface), C.int(width), C.int(height))
	if win == nil {
		C.eglDestroyContext(dpy, ctx)
		return nil, fmt.Errorf("%w: wl_egl_window_create", ErrSurfaceCreation)
	}
	surf := C.eglCreateWindowSurface(dpy, cfg, C.EGLNativeWindowType(unsafe.Pointer(win)), nil)
	if surf == C.EGLSurface(C.EGL_NO_SURFACE) {
		C.wl_egl_window_destroy(win)
		C.eglDestroyContext(dpy, ctx)
		return nil, fmt.Errorf("%w: %s", ErrSurfaceCreation, eglErrorString())
	}

	c := &Context{
		display: dpy,
		config:  cfg,
		context: ctx,
		surface: surf,
		window:  win,
		width:   width,
		height:  height,
	}
	if err := c.makeCurrent(); err != nil {
		c.Destroy()
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"width":  width,
		"height": height,
	}).Debug("EGL context created")
	return c, nil
}

// chooseConfig picks the first configuration matching a fixed RGBA8,
// GLES2, window-surface template.
func chooseConfig(dpy C.EGLDisplay) (C.EGLConfig, error) {
	attribs := [...]C.EGLint{
		C.EGL_SURFACE_TYPE, C.EGL_WINDOW_BIT,
		C.EGL_RENDERABLE_TYPE, C.EGL_OPENGL_ES2_BIT,
		C.EGL_RED_SIZE, 8,
		C.EGL_GREEN_SIZE, 8,
		C.EGL_BLUE_SIZE, 8,
		C.EGL_ALPHA_SIZE, 8,
		C.EGL_NONE,
	}
	var cfg C.EGLConfig
	var n C.EGLint
	if C.eglChooseConfig(dpy, &attribs[0], &cfg, 1, &n) != C.EGL_TRUE {
		return nil, fmt.Errorf("%w: eglChooseConfig: %s", ErrNoCompatibleConfig, eglErrorString())
	}
	if n < 1 {
		return nil, ErrNoCompatibleConfig
	}
	return cfg, nil
}

func (c *Context) makeCurrent() error {
	if C.eglMakeCurrent(c.display, c.surface, c.surface, c.context) != C.EGL_TRUE {
		return fmt.Errorf("%w: %s", ErrContextActivation, eglErrorString())
	}
	c.current = true
	return nil
}

// EnsureCurrent makes the context current if it is not already. The
// current flag is explicit state owned here; ambient EGL state is
// never queried.
func (c *Context) EnsureCurrent() error {
	if c.current {
		return nil
	}
	return c.makeCurrent()
}

// SwapBuffers presents the frame.
func (c *Context) SwapBuffers() error {
	if C.eglSwapBuffers(c.display, c.surface) != C.EGL_TRUE {
		return fmt.Errorf("egl: swap buffers: %s", eglErrorString())
	}
	return nil
}

// Resize re-currents the context and resizes the drawable. Zero on
// either axis is an input error.
func (c *Context) Resize(width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("%w: resize to %dx%d", ErrInvalidInput, width, height)
	}
	if err := c.EnsureCurrent(); err != nil {
		return err
	}
	C.wl_egl_window_resize(c.window, C.int(width), C.int(height), 0, 0)
	c.width = width
	c.height = height
	return nil
}

// Size reports the drawable's current size.
func (c *Context) Size() (width, height uint32) {
	return c.width, c.height
}

// Destroy releases the surface, context and native window together.
func (c *Context) Destroy() {
	C.eglMakeCurrent(c.display, C.EGLSurface(C.EGL_NO_SURFACE), C.EGLSurface(C.EGL_NO_SURFACE), C.EGLContext(C.EGL_NO_CONTEXT))
	c.current = false
	if c.surface != C.EGLSurface(C.EGL_NO_SURFACE) {
		C.eglDestroySurface(c.display, c.surface)
		c.surface = C.EGLSurface(C.EGL_NO_SURFACE)
	}
	if c.window != nil {
		C.wl_egl_window_destroy(c.window)
		c.window = nil
	}
	if c.context != C.EGLContext(C.EGL_NO_CONTEXT) {
		C.eglDestroyContext(c.display, c.context)
		c.context = C.EGLContext(C.EGL_NO_CONTEXT)
	}
}

func eglErrorString() string {
	switch C.eglGetError() {
	case C.EGL_SUCCESS:
		return "success"
	case C.EGL_NOT_INITIALIZED:
		return "not initialized"
	case C.EGL_BAD_ACCESS:
		return "bad access"
	case C.EGL_BAD_ALLOC:
		return "bad alloc"
	case C.EGL_BAD_ATTRIBUTE:
		return "bad attribute"
	case C.EGL_BAD_CONFIG:
		return "bad config"
	case C.EGL_BAD_CONTEXT:
		return "bad context"
	case C.EGL_BAD_CURRENT_SURFACE:
		return "bad current surface"
	case C.EGL_BAD_DISPLAY:
		return "bad display"
	case C.EGL_BAD_MATCH:
		return "bad match"
	case C.EGL_BAD_NATIVE_PIXMAP:
		return "bad native pixmap"
	case C.EGL_BAD_NATIVE_WINDOW:
		return "bad native window"
	case C.EGL_BAD_PARAMETER:
		return "bad parameter"
	case C.EGL_BAD_SURFACE:
		return "bad surface"
	case C.EGL_CONTEXT_LOST:
		return "context lost"
	default:
		return "unknown error"
	}
}
