package main

import "github.com/gaurav-prasanna/wikiplain/cmd"

func main() {
	cmd.Execute()
}
