package main

import "github.com/creatorloop/vertcut/internal/cli"

func main() {
	cli.Main()
}
