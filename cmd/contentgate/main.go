package main

import (
	"os"

	"github.com/opencurator/contentgate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
