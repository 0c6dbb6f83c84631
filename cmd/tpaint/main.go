package main

import "github.com/Fepozopo/tpaint/pkg/cli"

func main() {
	cli.RunCLI()
}
