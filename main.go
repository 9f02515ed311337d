package main

import "github.com/shapenote/shapenote/cmd"

func main() {
	cmd.Execute()
}
