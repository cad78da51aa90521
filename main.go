package main

import "github.com/meysamhadeli/codectx/cmd"

func main() {
	cmd.Execute()
}
