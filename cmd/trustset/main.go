// trustset is the command-line interface for the trustset library.
//
// It enumerates a trust-settings store and reports the certificates
// explicitly trusted as roots or explicitly denied, per settings domain
// scope:
//
//	trustset enumerate --store settings.yaml --scope machine --disposition root
//	trustset --help
package main

import (
	"fmt"
	"os"

	"github.com/sufield/trustset/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
