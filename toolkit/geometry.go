package toolkit

// PhysicalSize is a size in device pixels.
type PhysicalSize struct {
	Width  uint32
	Height uint32
}

// LogicalSize is a size in scale independent units.
type LogicalSize struct {
	Width  float32
	Height float32
}

// LogicalPosition is a point in scale independent units.
type LogicalPosition struct {
	X float32
	Y float32
}

// WindowSize carries a size in either flavor and converts between them
// with a scale factor.
type WindowSize struct {
	physical bool
	width    float32
	height   float32
}

func Physical(width, height uint32) WindowSize {
	return WindowSize{physical: true, width: float32(width), height: float32(height)}
}

func Logical(width, height float32) WindowSize {
	return WindowSize{width: width, height: height}
}

func (s WindowSize) ToPhysical(scale float32) PhysicalSize {
	if s.physical {
		return PhysicalSize{Width: uint32(s.width), Height: uint32(s.height)}
	}
	return PhysicalSize{
		Width:  uint32(s.width * scale),
		Height: uint32(s.height * scale),
	}
}

func (s WindowSize) ToLogical(scale float32) LogicalSize {
	if !s.physical {
		return LogicalSize{Width: s.width, Height: s.height}
	}
	return LogicalSize{
		Width:  s.width / scale,
		Height: s.height / scale,
	}
}
