// Package main is the entry point for the rsdisco CLI.
package main

import "rsdisco.dev/pkg/rsdisco/cmd"

func main() {
	cmd.Execute()
}
