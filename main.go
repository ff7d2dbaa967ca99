package main

import "github.com/floodlens/wptriage/cmd"

func main() {
	cmd.Execute()
}
