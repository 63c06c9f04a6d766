package main

import "github.com/goliatone/go-sitegen/internal/cli"

func main() {
	cli.Execute()
}
