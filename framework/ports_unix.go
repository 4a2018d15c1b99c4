//go:build unix

package framework

import (
	"syscall"

	"golang.org/x/sys/unix"
)

func disableAddressReuse(network, address string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 0)
	})
	if err != nil {
		return err
	}
	return sockErr
}
