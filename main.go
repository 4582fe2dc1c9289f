package main

import "github.com/XY-Finance/callforge/cmd"

func main() {
	cmd.Execute()
}
