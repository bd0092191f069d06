package main

import "github.com/doclens/doclens/cmd"

func main() {
	cmd.Execute()
}
