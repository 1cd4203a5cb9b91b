package main

import "gudang/internal/cli"

func main() {
	cli.Execute()
}
