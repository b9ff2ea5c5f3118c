// Command redactchat is a terminal chat client that redacts every message
// before it reaches the assistant.
package main

import "github.com/diogo/redactchat/internal/commands"

func main() {
	commands.Execute()
}
