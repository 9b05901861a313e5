package main

import "github.com/okian/bikeshare/internal/cli"

func main() {
	cli.Execute()
}
