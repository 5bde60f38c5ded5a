// Package main provides the randomizer CLI.
package main

import "github.com/mesh-intelligence/randomizer/internal/cli"

func main() {
	cli.Execute()
}
