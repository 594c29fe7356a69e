// Command gossipcharts renders gossip time-to-delivery charts from the
// experiment results file.
//
// With no flags it reads results/lset and writes the mean, p50 and p90 charts
// into docs/images. The summary and inspect subcommands print views of the
// same records to stdout without writing files.
package main

import (
	"os"

	"github.com/mooso/pheromessage/src/logging"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		logging.Errorf("%v", err)
		os.Exit(1)
	}
}
