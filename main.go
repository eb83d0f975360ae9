package main

import "github.com/mouse-blink/guardpatch/cmd"

func main() {
	cmd.Execute()
}
