package main

import "github.com/busybox42/headerlens/cmd/headerlens/commands"

func main() {
	commands.Execute()
}
