// Command umpconv decodes and converts Universal MIDI Packets and MIDI 1.0
// byte streams given as hex on the command line.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "umpconv: %v\n", err)
		os.Exit(1)
	}
}
