package main

import "connectn/cmd"

func main() {
	cmd.Execute()
}
