package main

import "github.com/bimalism/portal/internal/cli"

func main() {
	cli.Execute()
}
