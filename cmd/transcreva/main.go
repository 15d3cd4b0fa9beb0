package main

import "github.com/ofarias/transcreva/internal/adapters/cli"

func main() {
	cli.Execute()
}
