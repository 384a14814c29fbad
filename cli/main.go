package main

import "github.com/stephane-martin/forklift-log-parser/cli/cmd"

func main() {
	cmd.Execute()
}
