// Command compositor renders tables, forms and interchange JSON from the
// command line, fills rows interactively and serves table views over HTTP.
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
