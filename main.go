package main

import "github.com/b33n-tech/scrapper-persee/cmd"

func main() {
	cmd.Execute()
}
