package main

import "github.com/perfview/perfview/internal/cli"

func main() {
	cli.Execute()
}
