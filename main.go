package main

import "labeler/cmd"

func main() {
	cmd.Execute()
}
