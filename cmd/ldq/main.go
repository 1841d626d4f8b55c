package main

import "ldq/internal/cli"

func main() {
	cli.Execute()
}
