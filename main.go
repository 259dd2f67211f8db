package main

import "github.com/workdigest/workdigest/cmd"

func main() {
	cmd.Execute()
}
