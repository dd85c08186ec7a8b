package main

import (
	"os"

	"github.com/Alwanly/ttn-storage-pull/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
