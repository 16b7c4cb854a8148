package main

import "github.com/notargets/goconvect/cmd"

func main() {
	cmd.Execute()
}
