package main

import "github.com/liftedinit/chaind/cmd/chaind"

func main() {
	chaind.Execute()
}
