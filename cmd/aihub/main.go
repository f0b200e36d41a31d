package main

import (
	"aihub/cmd/aihub/cmd"
)

func main() {
	cmd.Execute()
}
