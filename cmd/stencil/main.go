package main

import "github.com/mvp-joe/stencil/internal/cli"

func main() {
	cli.Execute()
}
