package main

import "github.com/twiced-technology-gmbh/deskboard/cmd"

func main() {
	cmd.Execute()
}
