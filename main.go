package main

import (
	"os"

	"inkwell/cli"
)

func main() {
	os.Exit(cli.New().Execute())
}
