package main

import "github.com/mDuo13/txsplain/internal/cli"

func main() {
	cli.Execute()
}
