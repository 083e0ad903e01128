package main

import "github.com/asan-emirsaleh/duplex-basecall/cmd"

func main() {
	cmd.Execute() // initialize cobra commands
}
