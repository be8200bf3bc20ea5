package wl

const _REGISTRY_BIND = 0

const (
	_REGISTRY_EVENT_GLOBAL        = 0
	_REGISTRY_EVENT_GLOBAL_REMOVE = 1
)

// Registry announces the server's globals and binds proxies to them.
type Registry struct {
	BaseProxy
	globalHandlers       handlerList
	globalRemoveHandlers handlerList
}

type RegistryGlobalEvent struct {
	Name      uint32
	Interface string
	Version   uint32
}

type RegistryGlobalRemoveEvent struct {
	Name uint32
}

func NewRegistry(conn *Connection) *Registry {
	ret := new(Registry)
	conn.Register(ret)
	return ret
}

// Bind ties an already registered proxy to the named global. The proxy
// must come from one of the New* constructors, which allocate its id.
func (p *Registry) Bind(name uint32, iface string, version uint32, ret Proxy) error {
	return p.Connection().SendRequest(p, _REGISTRY_BIND, name, iface, version, ret)
}

func (p *Registry) AddGlobalHandler(h Handler) {
	p.globalHandlers.add(h)
}

func (p *Registry) RemoveGlobalHandler(h Handler) {
	p.globalHandlers.remove(h)
}

func (p *Registry) AddGlobalRemoveHandler(h Handler) {
	p.globalRemoveHandlers.add(h)
}

func (p *Registry) RemoveGlobalRemoveHandler(h Handler) {
	p.globalRemoveHandlers.remove(h)
}

func (p *Registry) Dispatch(event *Event) {
	switch event.opcode {
	case _REGISTRY_EVENT_GLOBAL:
		ev := RegistryGlobalEvent{}
		ev.Name = event.Uint32()
		ev.Interface = event.String()
		ev.Version = event.Uint32()
		p.globalHandlers.emit(ev)
	case _REGISTRY_EVENT_GLOBAL_REMOVE:
		ev := RegistryGlobalRemoveEvent{}
		ev.Name = event.Uint32()
		p.globalRemoveHandlers.emit(ev)
	}
}
