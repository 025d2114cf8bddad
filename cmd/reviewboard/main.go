package main

import "github.com/nfrund/reviewboard/cmd/reviewboard/cmd"

func main() {
	cmd.Execute()
}
