// Package main provides the collection CLI.
package main

import "github.com/mesh-intelligence/collection/internal/cli"

func main() {
	cli.Execute()
}
