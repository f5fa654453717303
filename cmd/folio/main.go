// Command folio runs the portfolio site backend.
package main

import "github.com/mquinn/folio/backend/cmd/folio/commands"

func main() {
	commands.Execute()
}
