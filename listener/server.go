package listener

import (
	"context"
	"errors"
	"net"
	"sync"

	"udplisten/common"

	log "github.com/sirupsen/logrus"
)

// Listener owns a single UDP socket for its whole lifetime.
//
// Binding and receiving happen on their own goroutines and are forwarded
// as events to the channel drained by Run, so the reactions of the Handler
// are always executed one at a time.
type Listener struct {
	Handler Handler
	Events  chan Event

	conn  *net.UDPConn
	state State
	lock  sync.Mutex
	done  chan struct{}
}

func NewListener(handler Handler) *Listener {
	if handler == nil {
		handler = NewLogHandler(nil)
	}

	return &Listener{
		Handler: handler,
		Events:  make(chan Event),
		state:   Unbound,
		done:    make(chan struct{}),
	}
}

// Requests the socket to be bound to the given port on all IPv4
// interfaces. Returns immediately, the outcome is reported to the Handler
// once Run picks up the listening or error event.
func (l *Listener) Start(port int) error {
	if port < 0 || port > 65535 {
		return ErrInvalidPort
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	if l.state == Closed {
		return ErrClosed
	}

	if l.state != Unbound {
		return ErrAlreadyStarted
	}

	l.state = Binding
	go bindRoutine(l, port)

	return nil
}

// Event loop. Blocks until the socket is closed, either by an error
// reaction, by ctx being done or by a call to Close.
func (l *Listener) Run(ctx context.Context) error {
	defer l.Close()

	for {
		select {
		case <-ctx.Done():
			if l.State() != Closed {
				l.Handler.HandleShutdown()
			}
			return nil
		case <-l.done:
			return nil
		case e := <-l.Events:
			if l.dispatch(e) {
				return nil
			}
		}
	}
}

// Returns true once the listener has been closed by the event
func (l *Listener) dispatch(e Event) bool {
	switch e.Kind {
	case EventListening:
		l.setState(Listening)
		l.Handler.HandleListening(e.Addr)
	case EventMessage:
		l.Handler.HandleMessage(e.Datagram)
	case EventError:
		l.Handler.HandleError(e.Err)
		l.Close()
		return true
	default:
		log.Warn("listener: unknown event ", e.Kind)
	}

	return false
}

// Closes the socket and releases the port. Safe to call more than once.
func (l *Listener) Close() (err error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.state == Closed {
		return nil
	}

	l.state = Closed
	close(l.done)

	if l.conn != nil {
		err = l.conn.Close()
	}

	return
}

func (l *Listener) State() State {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.state
}

// Bound local address, or nil if the socket is not bound
func (l *Listener) LocalAddr() *net.UDPAddr {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.conn == nil {
		return nil
	}

	addr, _ := l.conn.LocalAddr().(*net.UDPAddr)
	return addr
}

func (l *Listener) setState(state State) {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.state != Closed {
		l.state = state
	}
}

// Hands an event to the loop. Returns false if the listener was closed
// before the event could be delivered.
func (l *Listener) post(e Event) bool {
	select {
	case l.Events <- e:
		return true
	case <-l.done:
		return false
	}
}

func bindRoutine(l *Listener, port int) {
	conn, err := net.ListenUDP("udp4", common.GetWildcardAddress(port))
	if err != nil {
		l.post(Event{Kind: EventError, Err: &SocketError{Op: "bind", Err: err}})
		return
	}

	l.lock.Lock()
	if l.state == Closed {
		l.lock.Unlock()
		conn.Close()
		return
	}
	l.conn = conn
	l.lock.Unlock()

	addr, _ := conn.LocalAddr().(*net.UDPAddr)
	if !l.post(Event{Kind: EventListening, Addr: addr}) {
		return
	}

	// Started only after the listening event is queued so that it is
	// always dispatched before any message.
	go receiverRoutine(l, conn)
}

// This routine reads datagrams from the socket and forwards them to the
// event loop until the socket is closed.
func receiverRoutine(l *Listener, conn *net.UDPConn) {
	buffer := make([]byte, common.MAX_DATAGRAM_SIZE)

	for {
		n, sender, err := conn.ReadFromUDP(buffer)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}

			l.post(Event{Kind: EventError, Err: &SocketError{Op: "read", Err: err}})
			return
		}

		payload := make([]byte, n)
		copy(payload, buffer[:n])

		if !l.post(Event{Kind: EventMessage, Datagram: Datagram{Payload: payload, Sender: sender}}) {
			return
		}
	}
}
