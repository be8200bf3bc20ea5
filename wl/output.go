package wl

const _OUTPUT_RELEASE = 0

const (
	_OUTPUT_EVENT_GEOMETRY    = 0
	_OUTPUT_EVENT_MODE        = 1
	_OUTPUT_EVENT_DONE        = 2
	_OUTPUT_EVENT_SCALE       = 3
	_OUTPUT_EVENT_NAME        = 4
	_OUTPUT_EVENT_DESCRIPTION = 5
)

// OutputModeEvent flags.
const (
	OutputModeCurrent   = 0x1
	OutputModePreferred = 0x2
)

// Output describes one display the compositor drives.
type Output struct {
	BaseProxy
	geometryHandlers    handlerList
	modeHandlers        handlerList
	doneHandlers        handlerList
	scaleHandlers       handlerList
	nameHandlers        handlerList
	descriptionHandlers handlerList
}

type OutputGeometryEvent struct {
	X              int32
	Y              int32
	PhysicalWidth  int32
	PhysicalHeight int32
	Subpixel       int32
	Make           string
	Model          string
	Transform      int32
}

type OutputModeEvent struct {
	Flags   uint32
	Width   int32
	Height  int32
	Refresh int32
}

type OutputDoneEvent struct{}

type OutputScaleEvent struct {
	Factor int32
}

type OutputNameEvent struct {
	Name string
}

type OutputDescriptionEvent struct {
	Description string
}

func NewOutput(conn *Connection) *Output {
	ret := new(Output)
	conn.Register(ret)
	return ret
}

func (p *Output) Release() error {
	err := p.Connection().SendRequest(p, _OUTPUT_RELEASE)
	p.Connection().Unregister(p)
	return err
}

func (p *Output) AddGeometryHandler(h Handler) {
	p.geometryHandlers.add(h)
}

func (p *Output) RemoveGeometryHandler(h Handler) {
	p.geometryHandlers.remove(h)
}

func (p *Output) AddModeHandler(h Handler) {
	p.modeHandlers.add(h)
}

func (p *Output) RemoveModeHandler(h Handler) {
	p.modeHandlers.remove(h)
}

func (p *Output) AddDoneHandler(h Handler) {
	p.doneHandlers.add(h)
}

func (p *Output) RemoveDoneHandler(h Handler) {
	p.doneHandlers.remove(h)
}

func (p *Output) AddScaleHandler(h Handler) {
	p.scaleHandlers.add(h)
}

func (p *Output) RemoveScaleHandler(h Handler) {
	p.scaleHandlers.remove(h)
}

func (p *Output) AddNameHandler(h Handler) {
	p.nameHandlers.add(h)
}

func (p *Output) RemoveNameHandler(h Handler) {
	p.nameHandlers.remove(h)
}

func (p *Output) AddDescriptionHandler(h Handler) {
	p.descriptionHandlers.add(h)
}

func (p *Output) RemoveDescriptionHandler(h Handler) {
	p.descriptionHandlers.remove(h)
}

func (p *Output) Dispatch(event *Event) {
	switch event.opcode {
	case _OUTPUT_EVENT_GEOMETRY:
		ev := OutputGeometryEvent{}
		ev.X = event.Int32()
		ev.Y = event.Int32()
		ev.PhysicalWidth = event.Int32()
		ev.PhysicalHeight = event.Int32()
		ev.Subpixel = event.Int32()
		ev.Make = event.String()
		ev.Model = event.String()
		ev.Transform = event.Int32()
		p.geometryHandlers.emit(ev)
	case _OUTPUT_EVENT_MODE:
		ev := OutputModeEvent{}
		ev.Flags = event.Uint32()
		ev.Width = event.Int32()
		ev.Height = event.Int32()
		ev.Refresh = event.Int32()
		p.modeHandlers.emit(ev)
	case _OUTPUT_EVENT_DONE:
		p.doneHandlers.emit(OutputDoneEvent{})
	case _OUTPUT_EVENT_SCALE:
		ev := OutputScaleEvent{}
		ev.Factor = event.Int32()
		p.scaleHandlers.emit(ev)
	case _OUTPUT_EVENT_NAME:
		ev := OutputNameEvent{}
		ev.Name = event.String()
		p.nameHandlers.emit(ev)
	case _OUTPUT_EVENT_DESCRIPTION:
		ev := OutputDescriptionEvent{}
		ev.Description = event.String()
		p.descriptionHandlers.emit(ev)
	}
}
