package toolkit

// Event is one window event delivered to the framework. The set is
// closed: geometry changes and pointer input are all a layer surface
// ever receives.
type Event interface {
	windowEvent()
}

// PointerButton identifies a logical pointer button. Overlay surfaces
// treat every physical button as the primary one.
type PointerButton int

const ButtonLeft PointerButton = 0

type ResizedEvent struct {
	Size LogicalSize
}

type ScaleFactorChangedEvent struct {
	Factor float32
}

type PointerMovedEvent struct {
	Position LogicalPosition
}

type PointerEnteredEvent struct {
	Position LogicalPosition
}

type PointerExitedEvent struct{}

type PointerPressedEvent struct {
	Button   PointerButton
	Position LogicalPosition
}

type PointerReleasedEvent struct {
	Button   PointerButton
	Position LogicalPosition
}

func (ResizedEvent) windowEvent()            {}
func (ScaleFactorChangedEvent) windowEvent() {}
func (PointerMovedEvent) windowEvent()       {}
func (PointerEnteredEvent) windowEvent()     {}
func (PointerExitedEvent) windowEvent()      {}
func (PointerPressedEvent) windowEvent()     {}
func (PointerReleasedEvent) windowEvent()    {}
