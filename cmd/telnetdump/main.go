// Command telnetdump is a host exercising the telnet and ansi packages
// end to end: it dials a Telnet peer, decodes the wire stream into
// events, renders them to the operator's terminal, and proxies stdin
// back out through the encoder.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
