// Command docketctl runs the docket selection pipeline from the
// command line: preprocessing the raw export and solving with any of
// the three algorithms.
package main

import (
	"fmt"
	"os"

	"github.com/fiscalworks/DOCKET/cmd/docketctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
