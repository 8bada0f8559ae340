package main

import "github.com/deppfellow/starwars-api/internal/cli"

func main() {
	cli.Execute()
}
