package wl

const _SHM_CREATE_POOL = 0

const _SHM_EVENT_FORMAT = 0

const (
	ShmFormatArgb8888 = 0
	ShmFormatXrgb8888 = 1
)

// Shm is the shared memory buffer factory.
type Shm struct {
	BaseProxy
	formatHandlers handlerList
}

type ShmFormatEvent struct {
	Format uint32
}

func NewShm(conn *Connection) *Shm {
	ret := new(Shm)
	conn.Register(ret)
	return ret
}

func (p *Shm) CreatePool(fd uintptr, size int32) (*ShmPool, error) {
	ret := NewShmPool(p.Connection())
	return ret, p.Connection().SendRequest(p, _SHM_CREATE_POOL, ret, fd, size)
}

func (p *Shm) AddFormatHandler(h Handler) {
	p.formatHandlers.add(h)
}

func (p *Shm) RemoveFormatHandler(h Handler) {
	p.formatHandlers.remove(h)
}

func (p *Shm) Dispatch(event *Event) {
	switch event.opcode {
	case _SHM_EVENT_FORMAT:
		ev := ShmFormatEvent{}
		ev.Format = event.Uint32()
		p.formatHandlers.emit(ev)
	}
}

const (
	_SHM_POOL_CREATE_BUFFER = 0
	_SHM_POOL_DESTROY       = 1
	_SHM_POOL_RESIZE        = 2
)

type ShmPool struct {
	BaseProxy
}

func NewShmPool(conn *Connection) *ShmPool {
	ret := new(ShmPool)
	conn.Register(ret)
	return ret
}

func (p *ShmPool) CreateBuffer(offset, width, height, stride int32, format uint32) (*Buffer, error) {
	ret := NewBuffer(p.Connection())
	return ret, p.Connection().SendRequest(p, _SHM_POOL_CREATE_BUFFER, ret, offset, width, height, stride, format)
}

func (p *ShmPool) Destroy() error {
	err := p.Connection().SendRequest(p, _SHM_POOL_DESTROY)
	p.Connection().Unregister(p)
	return err
}

func (p *ShmPool) Resize(size int32) error {
	return p.Connection().SendRequest(p, _SHM_POOL_RESIZE, size)
}

const _BUFFER_DESTROY = 0

const _BUFFER_EVENT_RELEASE = 0

type Buffer struct {
	BaseProxy
	releaseHandlers handlerList
}

type BufferReleaseEvent struct{}

func NewBuffer(conn *Connection) *Buffer {
	ret := new(Buffer)
	conn.Register(ret)
	return ret
}

func (p *Buffer) Destroy() error {
	err := p.Connection().SendRequest(p, _BUFFER_DESTROY)
	p.Connection().Unregister(p)
	return err
}

func (p *Buffer) AddReleaseHandler(h Handler) {
	p.releaseHandlers.add(h)
}

func (p *Buffer) RemoveReleaseHandler(h Handler) {
	p.releaseHandlers.remove(h)
}

func (p *Buffer) Dispatch(event *Event) {
	switch event.opcode {
	case _BUFFER_EVENT_RELEASE:
		p.releaseHandlers.emit(BufferReleaseEvent{})
	}
}
