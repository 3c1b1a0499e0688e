package listener

import (
	"fmt"
	"net"

	"udplisten/common"

	log "github.com/sirupsen/logrus"
)

// Reactions invoked by the event loop. Calls never overlap.
type Handler interface {
	HandleListening(addr *net.UDPAddr)
	HandleMessage(d Datagram)
	HandleError(err error)
	HandleShutdown()
}

var _ Handler = (*LogHandler)(nil)

// Writes one human readable line per reaction
type LogHandler struct {
	Logger *log.Logger
}

func NewLogHandler(logger *log.Logger) *LogHandler {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &LogHandler{Logger: logger}
}

func (h *LogHandler) HandleListening(addr *net.UDPAddr) {
	h.Logger.Info(FormatListening(addr))
}

func (h *LogHandler) HandleMessage(d Datagram) {
	h.Logger.Info(FormatMessage(d))
}

func (h *LogHandler) HandleError(err error) {
	h.Logger.Error(FormatError(err))
}

func (h *LogHandler) HandleShutdown() {
	h.Logger.Info("Exiting...")
}

func FormatListening(addr *net.UDPAddr) string {
	return fmt.Sprintf("Server listening %s", common.FormatUDPAddr(addr))
}

func FormatMessage(d Datagram) string {
	return fmt.Sprintf("Server got: %s from %s", d.Payload, common.FormatUDPAddr(d.Sender))
}

func FormatError(err error) string {
	return fmt.Sprintf("Server error:\n%v", err)
}
