package main

import "github.com/2beens/fitcalc/internal/cli"

func main() {
	cli.Execute()
}
