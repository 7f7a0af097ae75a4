package main

import "github.com/devicelab-dev/selene/pkg/cli"

func main() {
	cli.Execute()
}
