package main

import "reposearch/cmd"

func main() {
	cmd.Execute()
}
