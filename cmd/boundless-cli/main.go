package main

import "github.com/0xdevcollins/boundless-sub003/cmd/boundless-cli/cmd"

func main() {
	cmd.Execute()
}
