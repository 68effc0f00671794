package main

import "github.com/golangid/botkit/internal/cli"

func main() {
	cli.Execute()
}
