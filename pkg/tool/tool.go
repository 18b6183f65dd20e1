// Package tool defines the tool-facing contract shared with the
// surrounding agent framework: each operation takes a flat parameter
// object (strings, booleans, and string lists only) and returns
// {success, output, error?, metadata}.
package tool

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// ParamType is the type tag of a tool parameter.
type ParamType string

const (
	ParamTypeString ParamType = "string"
	ParamTypeBool   ParamType = "boolean"
	ParamTypeList   ParamType = "array"
)

// ParamDef defines a single tool parameter.
type ParamDef struct {
	Type        ParamType `json:"type"`
	Description string    `json:"description"`
	Required    bool      `json:"required"`
	Default     any       `json:"default,omitempty"`
}

// Definition describes a tool's interface.
type Definition struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Parameters  map[string]ParamDef `json:"parameters"`

	// SideEffects indicates the tool may modify files.
	SideEffects bool `json:"side_effects"`
}

// RequiredParams returns the sorted names of required parameters.
func (d *Definition) RequiredParams() []string {
	var required []string
	for name, param := range d.Parameters {
		if param.Required {
			required = append(required, name)
		}
	}
	sort.Strings(required)
	return required
}

// Params is a flat parameter object. Values are strings, booleans, or
// string lists; the typed getters tolerate the []any shape JSON decoding
// produces for lists.
type Params map[string]any

// String returns a string parameter. The second return is false when the
// parameter is absent or not a string.
func (p Params) String(name string) (string, bool) {
	v, ok := p[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// StringOr returns a string parameter or a fallback.
func (p Params) StringOr(name, fallback string) string {
	if s, ok := p.String(name); ok {
		return s
	}
	return fallback
}

// Bool returns a boolean parameter, false when absent.
func (p Params) Bool(name string) bool {
	v, ok := p[name]
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// StringList returns a string-list parameter. Absent returns nil.
func (p Params) StringList(name string) []string {
	v, ok := p[name]
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Result is the outcome of a tool execution.
type Result struct {
	Success  bool           `json:"success"`
	Output   any            `json:"output"`
	Error    string         `json:"error,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Ok wraps output in a successful result.
func Ok(output any, metadata map[string]any) *Result {
	return &Result{Success: true, Output: output, Metadata: metadata}
}

// Fail wraps an error message in a failed result.
func Fail(message string, metadata map[string]any) *Result {
	return &Result{Success: false, Error: message, Metadata: metadata}
}

// Tool is an executable operation. Implementations must be safe for
// concurrent use.
type Tool interface {
	Definition() Definition
	Execute(ctx context.Context, params Params) *Result
}

// Registry holds the available tools.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Registering a duplicate name is an error.
func (r *Registry) Register(t Tool) error {
	name := t.Definition().Name
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %q already registered", name)
	}
	r.tools[name] = t
	return nil
}

// Get returns a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the sorted registered tool names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch validates params against the tool's definition and executes it.
// Failures of any kind come back as a failed Result, never a Go error, so
// the orchestration layer always gets the contract shape.
func (r *Registry) Dispatch(ctx context.Context, name string, params Params) *Result {
	t, ok := r.Get(name)
	if !ok {
		return Fail(fmt.Sprintf("unknown tool: %s", name), nil)
	}

	def := t.Definition()
	for _, req := range def.RequiredParams() {
		if _, present := params[req]; !present {
			return Fail(fmt.Sprintf("missing required parameter: %s", req),
				map[string]any{"error_kind": "invalid_argument"})
		}
	}

	return t.Execute(ctx, params)
}
