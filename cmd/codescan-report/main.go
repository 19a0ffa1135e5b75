package main

import "codescan-report/internal/cli"

func main() {
	cli.Execute()
}
