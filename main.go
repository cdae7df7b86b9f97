package main

import "github.com/masmgr/smartsquash-go/cmd"

func main() {
	cmd.Run()
}
