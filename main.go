package main

import "github.com/buildtrack/construction-api/cmd"

func main() {
	cmd.Execute()
}
