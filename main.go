package main

import "github.com/tasktools/taskwarrior-mcp/cmd"

func main() {
	cmd.Execute()
}
