package main

import "github.com/felixgeelhaar/toxicmates/cmd/toxicmates/cli"

func main() {
	cli.Execute()
}
