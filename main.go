package main

import "github.com/kamal-hamza/assetkit/cmd"

func main() {
	cmd.Execute()
}
