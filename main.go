package main

import "aisgo/cmd"

func main() {
	cmd.Execute()
}
