package main

import "github.com/tabwave/userdash/internal/dashboard/cli"

func main() {
	cli.Execute()
}
