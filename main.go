package main

import "ck-services/cmd"

func main() {
	cmd.Execute()
}
