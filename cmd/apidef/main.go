package main

import "github.com/mvp-joe/apidef/internal/cli"

func main() {
	cli.Execute()
}
