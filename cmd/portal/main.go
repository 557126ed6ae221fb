package main

import "github.com/vintechs/portal/cmd/portal/cmd"

func main() {
	cmd.Execute()
}
