package parser

import (
	"sort"
	"strings"
)

// Provider is a stateless factory keyed by tag name: given the parser
// session, the parent tag and the raw tag text, it constructs a Tag.
// Construction errors abort the tag's subtree; fatal ones abort the parse.
type Provider func(p *Parser, parent Tag, rawTagData string) (Tag, error)

// TagRegistry maps tag and macro names to providers. Names are matched
// case-insensitively. The registry is owned by the parser session; it is
// not safe for concurrent mutation, and sessions running on separate
// goroutines must not share one without external synchronization.
type TagRegistry struct {
	tags   map[string]Provider
	macros map[string]Provider
}

// NewTagRegistry returns an empty registry.
func NewTagRegistry() *TagRegistry {
	return &TagRegistry{
		tags:   make(map[string]Provider),
		macros: make(map[string]Provider),
	}
}

// RegisterTag binds every name to the actor tag provider. Existing
// bindings are overwritten, last write wins.
func (r *TagRegistry) RegisterTag(provider Provider, names ...string) {
	for _, name := range names {
		r.tags[strings.ToLower(name)] = provider
	}
}

// RegisterMacro binds every name to the macro tag provider, last write
// wins.
func (r *TagRegistry) RegisterMacro(provider Provider, names ...string) {
	for _, name := range names {
		r.macros[strings.ToLower(name)] = provider
	}
}

// Tag returns the provider for an actor tag name, or nil.
func (r *TagRegistry) Tag(name string) Provider {
	return r.tags[strings.ToLower(name)]
}

// Macro returns the provider for a macro name, or nil.
func (r *TagRegistry) Macro(name string) Provider {
	return r.macros[strings.ToLower(name)]
}

// TagNames returns the sorted registered actor tag names.
func (r *TagRegistry) TagNames() []string {
	names := make([]string, 0, len(r.tags))
	for name := range r.tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MacroNames returns the sorted registered macro names.
func (r *TagRegistry) MacroNames() []string {
	names := make([]string, 0, len(r.macros))
	for name := range r.macros {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Action is a host-defined callable referenced from markup by name. The
// argument depends on the call site: widget creators receive a
// *scene.Builder, conditionals and attribute actions receive the
// subject widget (possibly nil).
type Action func(arg any) any

// ActionRegistry maps action names to host callables.
type ActionRegistry struct {
	actions map[string]Action
}

// NewActionRegistry returns an empty registry.
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{actions: make(map[string]Action)}
}

// Register binds a name to an action, last write wins.
func (r *ActionRegistry) Register(name string, action Action) {
	r.actions[name] = action
}

// Get returns the action registered under name, or nil.
func (r *ActionRegistry) Get(name string) Action {
	return r.actions[name]
}
