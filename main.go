package main

import "mhchain/cmd"

func main() {
	cmd.Execute()
}
