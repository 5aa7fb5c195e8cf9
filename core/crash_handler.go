// Package core holds process-wide crash handling shared by every goroutine
package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"
)

// Finalizer restores the terminal; tcell.Screen satisfies it
type Finalizer interface {
	Fini()
}

var (
	crashMu       sync.Mutex
	crashTerminal Finalizer
	crashLog      = zerolog.Nop()

	// Replaced in tests
	crashOut io.Writer = os.Stderr
	exit               = os.Exit
)

// SetCrashTerminal registers the terminal to finalize before crash output; nil clears it
func SetCrashTerminal(t Finalizer) {
	crashMu.Lock()
	crashTerminal = t
	crashMu.Unlock()
}

// SetCrashLogger routes crash reports to the structured log as well
func SetCrashLogger(l zerolog.Logger) {
	crashMu.Lock()
	crashLog = l
	crashMu.Unlock()
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	term, log := crashTerminal, crashLog
	crashMu.Unlock()

	// Restore terminal first, raw mode output zig-zags otherwise
	if term != nil {
		term.Fini()
	}

	stack := debug.Stack()
	log.Error().Interface("panic", r).Bytes("stack", stack).Msg("crash")

	fmt.Fprintf(crashOut, "\r\n\x1b[31mOUTPOST CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(crashOut, "Stack Trace:\r\n%s\r\n", stack)

	exit(1)
}

// Go runs fn in a new goroutine with panic recovery
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
