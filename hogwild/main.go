package main

import "github.com/sarchlab/hogwild/hogwild/cmd"

func main() {
	cmd.Execute()
}
