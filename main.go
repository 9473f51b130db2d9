package main

import (
	"os"

	"github.com/skyops/skycoord/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
