// Command shelterctl is a terminal client for the shelter API. It keeps the
// signed-in session in a file, the way a browser keeps it in local storage.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
