package main

import (
	"github.com/ctskennerton/crisprtools/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
