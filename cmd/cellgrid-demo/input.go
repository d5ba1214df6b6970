//go:build !nogpu

package main

import (
	"os"

	"golang.org/x/term"
)

// waitForQuit puts the terminal into raw mode and closes stop when q,
// Q, or Ctrl-C is read. Falls back to waiting for any byte when raw
// mode is unavailable (piped stdin).
func waitForQuit(stop chan<- struct{}) {
	defer close(stop)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		old, err := term.MakeRaw(fd)
		if err == nil {
			defer term.Restore(fd, old)
		}
	}

	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return
		}
		if n == 1 {
			switch buf[0] {
			case 'q', 'Q', 0x03:
				return
			}
		}
	}
}
