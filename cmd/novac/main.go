// Command novac is the entry point for the nova semantic analysis and
// lowering pipeline.
package main

import (
	"os"

	"nova/cli"
)

func main() {
	os.Exit(cli.Run(os.Args))
}
