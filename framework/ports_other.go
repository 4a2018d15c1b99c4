//go:build !unix

package framework

import "syscall"

// Listeners on non-unix platforms do not enable address reuse by default.
func disableAddressReuse(network, address string, c syscall.RawConn) error {
	return nil
}
