package main

import "pizza-deprizza/cmd"

func main() {
	cmd.Execute()
}
