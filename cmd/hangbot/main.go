package main

import "github.com/mcoot/hangbot/internal/cli"

func main() {
	cli.Execute()
}
