// Command shapeurl parses, mutates and inspects URLs from the command line.
//
//	shapeurl parse "HTTP://EXAMPLE.com:80/a/../b?q#f"
//	shapeurl parse --base https://example.com/dir/ ../x -o json
//	shapeurl set https://example.com/ port 8080
//	shapeurl host "[::1]"
//	shapeurl form "a=1&b=two+words"
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Encountered error(s):", err)
		os.Exit(1)
	}
}
