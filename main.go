package main

import "github.com/miklilad/chip8/cmd"

func main() {
	cmd.Execute()
}
