package main

import "github.com/clipworks/ecc/internal/cli"

func main() {
	cli.Main()
}
