package main

import (
	"fmt"
	"os"

	"quotebackend/internal/clipboard"
)

func main() {
	if err := newRootCmd(clipboard.System{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
