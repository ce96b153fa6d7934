package main

import "github.com/laops/shipsync/internal/cmd"

func main() {
	cmd.Execute()
}
