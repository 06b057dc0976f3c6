package main

import "github.com/msquant/msquant-cli/cmd"

func main() {
	cmd.Execute()
}
