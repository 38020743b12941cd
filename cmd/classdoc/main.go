package main

import "github.com/mvp-joe/project-classdoc/internal/cli"

func main() {
	cli.Execute()
}
