package main

import "github.com/georgemunganga/shopstock-backend/cmd/api/commands"

func main() {
	commands.Execute()
}
