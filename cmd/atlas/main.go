// Command atlas runs the geographic database engine from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/atlas/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "atlas: %v\n", err)
	}
	os.Exit(cli.GetExitCode(err))
}
