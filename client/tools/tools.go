// Package tools models the tool catalog of a session: tools advertised by
// the agent runtime plus tools declared by the client itself.
package tools

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/lverhagen/agentlink/client/events"
)

// Tool describes one invocable tool.
type Tool struct {
	Name        string
	Description string
	// Schema is the JSON schema of the tool's input.
	Schema json.RawMessage
	// ClientDeclared marks tools registered locally rather than advertised
	// by the runtime; catalog replacement events do not remove them.
	ClientDeclared bool
}

// Declare builds a client-declared tool whose input schema is reflected
// from the parameters struct.
func Declare(name, description string, parameters any) (Tool, error) {
	reflector := jsonschema.Reflector{DoNotReference: true}
	var schema *jsonschema.Schema
	if t := reflect.TypeOf(parameters); t != nil && t.Kind() == reflect.Ptr {
		schema = reflector.ReflectFromType(t.Elem())
	} else {
		schema = reflector.Reflect(parameters)
	}

	encoded, err := schema.MarshalJSON()
	if err != nil {
		return Tool{}, fmt.Errorf("failed to encode schema for tool %q: %w", name, err)
	}
	return Tool{
		Name:           name,
		Description:    description,
		Schema:         encoded,
		ClientDeclared: true,
	}, nil
}

// Catalog is the ordered tool set of one session.
type Catalog struct {
	tools []Tool
	index map[string]int
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{index: map[string]int{}}
}

// Register adds or updates a tool, keeping first-registration order.
func (c *Catalog) Register(tool Tool) {
	if i, ok := c.index[tool.Name]; ok {
		c.tools[i] = tool
		return
	}
	c.index[tool.Name] = len(c.tools)
	c.tools = append(c.tools, tool)
}

// Replace swaps the runtime-advertised tools for the given descriptors.
// Client-declared tools survive the replacement.
func (c *Catalog) Replace(descriptors []events.ToolDescriptor) {
	kept := make([]Tool, 0, len(c.tools))
	for _, tool := range c.tools {
		if tool.ClientDeclared {
			kept = append(kept, tool)
		}
	}

	c.tools = kept
	c.index = make(map[string]int, len(kept)+len(descriptors))
	for i, tool := range kept {
		c.index[tool.Name] = i
	}
	for _, descriptor := range descriptors {
		c.Register(Tool{
			Name:        descriptor.Name,
			Description: descriptor.Description,
			Schema:      descriptor.Schemas,
		})
	}
}

// Lookup finds a tool by name.
func (c *Catalog) Lookup(name string) (Tool, bool) {
	i, ok := c.index[name]
	if !ok {
		return Tool{}, false
	}
	return c.tools[i], true
}

// Tools returns the catalog content in registration order.
func (c *Catalog) Tools() []Tool {
	return append([]Tool(nil), c.tools...)
}

// Len reports the number of catalogued tools.
func (c *Catalog) Len() int {
	return len(c.tools)
}
