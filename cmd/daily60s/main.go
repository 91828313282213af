package main

import "github.com/pfrederiksen/daily60s/internal/cli"

func main() {
	cli.Execute()
}
