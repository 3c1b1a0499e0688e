package listener

type State int

const (
	Unbound State = iota
	Binding
	Listening
	Closed
)

func (s State) String() string {
	switch s {
	case Unbound:
		return "unbound"
	case Binding:
		return "binding"
	case Listening:
		return "listening"
	case Closed:
		return "closed"
	}
	return "unknown"
}
