package main

import "github.com/mirlab/quartet/cmd"

func main() {
	cmd.Execute()
}
