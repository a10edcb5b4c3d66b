package main

import (
	"os"

	"github.com/bakewatt/bakewatt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
