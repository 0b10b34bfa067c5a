package main

import "github.com/andrescamacho/starlane-supply/internal/adapters/cli"

func main() {
	cli.Execute()
}
