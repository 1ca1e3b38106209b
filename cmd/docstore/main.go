package main

import "docstore-backend/cmd/docstore/cmd"

func main() {
	cmd.Execute()
}
