// main is the entry point for the worklog CLI.
package main

import (
	"fmt"
	"os"

	"github.com/lukaszwojcik89/worklog/cmd"
	"github.com/lukaszwojcik89/worklog/internal/contract"
	"github.com/lukaszwojcik89/worklog/internal/iocache"
)

func main() {
	err := cmd.Execute()

	if closeErr := iocache.CloseCaching(); closeErr != nil {
		contract.LogWarn("closing persistence stores", closeErr)
	}

	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
