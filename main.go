package main

import "astroctl/cmd"

func main() {
	cmd.Execute()
}
