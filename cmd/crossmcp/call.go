package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Run executes the call command. The tool result is printed as is; a
// failed call also makes the command fail.
func (c *CallCmd) Run(deps *Dependencies) error {
	if !json.Valid([]byte(c.Args)) {
		fmt.Fprintf(deps.Stderr, "error: arguments are not valid JSON: %s\n", c.Args)
		return errors.New("invalid JSON arguments")
	}

	res := deps.Tools.Handle(deps.Ctx, c.Tool, json.RawMessage(c.Args))
	var text string
	for _, content := range res.Content {
		if tc, ok := content.(*mcp.TextContent); ok {
			text += tc.Text
		}
	}
	if res.IsError {
		fmt.Fprintln(deps.Stderr, text)
		return errors.New(text)
	}
	fmt.Fprintln(deps.Stdout, text)
	return nil
}
