package main

import "github.com/OpenTraceLab/panzoom/cmd/panzoom/cmd"

func main() {
	cmd.Execute()
}
