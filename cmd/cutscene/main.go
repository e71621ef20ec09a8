// Command cutscene plays scripted scenes headlessly.
package main

import "github.com/nvlled/cutscene/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
