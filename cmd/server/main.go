package main

import "github.com/eslsoft/wordvault/cmd"

func main() {
	cmd.Execute()
}
