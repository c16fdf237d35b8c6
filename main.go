package main

import "github.com/jondeuce/arctools/cmd"

func main() {
	cmd.Execute()
}
