package main

import "github.com/jsphweid/mthd/cmd"

func main() {
	cmd.Execute()
}
