// pattern: Imperative Shell
package main

import (
	"os"

	"gitahead/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.NewApp(version, os.Stdout, os.Stderr).Execute(os.Args[1:]))
}
