package main

import "github.com/twiced-technology-gmbh/checklist/cmd"

func main() {
	cmd.Execute()
}
