package main

import "companypicker/cmd"

func main() {
	cmd.Execute()
}
