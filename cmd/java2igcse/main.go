package main

import (
	"os"

	"github.com/fairy-pitta/java2igcse-sub002/internal/app"
)

var Version = "(unknown)"

func main() {
	exitCode := app.Execute(Version, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}
