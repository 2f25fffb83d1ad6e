package main

import "github.com/stackvista/kluster-cli/cmd"

func main() {
	cmd.Execute()
}
