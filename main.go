package main

import "github.com/datamend/datamend-cli/cmd"

func main() {
	cmd.Execute()
}
