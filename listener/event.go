package listener

import "net"

type EventKind int

const (
	EventListening EventKind = iota
	EventMessage
	EventError
)

// A single datagram as delivered by the socket. Not retained after the
// message reaction returns.
type Datagram struct {
	Payload []byte
	Sender  *net.UDPAddr
}

type Event struct {
	Kind     EventKind
	Addr     *net.UDPAddr // EventListening
	Datagram Datagram     // EventMessage
	Err      error        // EventError
}
