package layershell

import "errors"

// Construction phase errors abort initialization and reach the caller;
// nothing partially constructed survives them. Steady state errors end
// Run. Per-frame rendering errors are the one category that is logged
// and swallowed instead.
var (
	ErrConnect              = errors.New("layershell: failed to connect to wayland")
	ErrGlobalInitialization = errors.New("layershell: failed to initialize wayland globals")
	ErrDispatch             = errors.New("layershell: failed to dispatch wayland events")
	ErrContextCreation      = errors.New("layershell: failed to create rendering context")
	ErrNoNativeHandle       = errors.New("layershell: connection exposes no native display handles")
	ErrComponentCreation    = errors.New("layershell: failed to create component")
	ErrInvalidConfig        = errors.New("layershell: invalid configuration")
	ErrSurfaceClosed        = errors.New("layershell: layer surface closed")
	ErrEventLoop            = errors.New("layershell: event loop failed")
)
