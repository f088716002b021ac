package main

import "github.com/douhashi/ghquery/cmd"

func main() {
	cmd.Execute()
}
