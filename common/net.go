package common

import (
	"fmt"
	"net"
)

func GetAddress(hostname string, port int) string {
	return fmt.Sprintf("%s:%d", hostname, port)
}

// Wildcard IPv4 address for the given port
func GetWildcardAddress(port int) *net.UDPAddr {
	return &net.UDPAddr{IP: net.IPv4zero, Port: port}
}

// Formats a UDP address as "ip:port" without IPv6 brackets or zones
func FormatUDPAddr(addr *net.UDPAddr) string {
	if addr == nil {
		return "<nil>"
	}

	ip := addr.IP
	if ip4 := ip.To4(); ip4 != nil {
		ip = ip4
	}

	return GetAddress(ip.String(), addr.Port)
}
