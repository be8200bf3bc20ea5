package layershell

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/dkolbly/layershell/toolkit"
)

// Run drives the system until the compositor closes the surface. One
// iteration flushes outgoing requests, sleeps in poll until the
// connection is readable or a framework timer is due, dispatches
// whatever arrived and renders if anything marked the frame dirty.
// Everything runs on the calling goroutine.
func (s *WindowingSystem) Run() error {
	s.window.RenderFrameIfDirty()

	for {
		if s.state.Closed() {
			logrus.Info("surface closed, leaving event loop")
			return nil
		}

		if err := s.conn.Flush(); err != nil {
			return fmt.Errorf("%w: flush: %v", ErrEventLoop, err)
		}

		timeout := -1
		if d, ok := s.component.(toolkit.Deadline); ok {
			if wait, has := d.NextDeadline(); has {
				timeout = int(wait.Milliseconds())
				if timeout < 0 {
					timeout = 0
				}
			}
		}

		fds := []unix.PollFd{{Fd: int32(s.conn.Fd()), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, timeout)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return fmt.Errorf("%w: poll: %v", ErrEventLoop, err)
		}

		if n > 0 {
			revents := fds[0].Revents
			if revents&(unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0 {
				return fmt.Errorf("%w: connection lost", ErrEventLoop)
			}
			if revents&unix.POLLIN != 0 {
				if guard, ok := s.conn.PrepareRead(); ok {
					if err := guard.Read(); err != nil {
						return fmt.Errorf("%w: read: %v", ErrEventLoop, err)
					}
				}
			}
		}

		if _, err := s.conn.DispatchPending(); err != nil {
			return fmt.Errorf("%w: %v", ErrDispatch, err)
		}

		s.component.UpdateTimersAndAnimations()
		s.window.RenderFrameIfDirty()
	}
}
