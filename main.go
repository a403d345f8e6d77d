package main

import "github.com/theskyentist/gelato/cmd"

func main() {
	cmd.Execute()
}
