package main

import "component-loader/cmd"

func main() {
	cmd.Execute()
}
