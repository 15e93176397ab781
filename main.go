package main

import "farmhub-client/cmd"

func main() {
	cmd.Execute()
}
