package main

import "github.com/fabiareis/trading-journal/internal/cli"

func main() {
	cli.Execute()
}
