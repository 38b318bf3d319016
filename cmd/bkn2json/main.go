package main

import "github.com/arloliu/bkn/cmd/bkn2json/cmd"

func main() {
	cmd.Execute()
}
