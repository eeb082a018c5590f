// Command orso manages schema-aware persistence: declared models are
// migrated into live tables with zero-loss rebuilds and timestamped
// backups.
package main

import (
	"os"

	"github.com/orso-db/orso/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
