package numbers

import (
	"context"
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// listen binds with SO_REUSEADDR so a restarted server can take the port back
// while old sockets sit in TIME_WAIT.
func listen(ctx context.Context, addr string) (net.Listener, error) {
	lc := net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			var err error
			cerr := c.Control(func(fd uintptr) {
				err = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
			})
			if cerr != nil {
				return cerr
			}
			return err
		},
	}
	return lc.Listen(ctx, "tcp", addr)
}
