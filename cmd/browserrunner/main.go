// Package main is the entry point for the browserrunner command.
package main

import "digital.vasic.browserrunner/internal/cli"

func main() {
	cli.Execute()
}
