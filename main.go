package main

import "github.com/twiced-technology-gmbh/chikita/cmd"

func main() {
	cmd.Execute()
}
