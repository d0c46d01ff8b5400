// Command zoom-batch applies a file of user lifecycle actions to Zoom and
// records the outcome of each one in a CSV file.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "zoom-batch:", err)
		os.Exit(1)
	}
}
