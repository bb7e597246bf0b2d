package main

import "github.com/sadopc/wifitrackr/cmd"

func main() {
	cmd.Execute()
}
