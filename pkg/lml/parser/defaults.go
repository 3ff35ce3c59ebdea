package parser

import (
	"github.com/lmllang/lml/pkg/lml/scene"
)

// DefaultTagRegistry returns a registry with every built-in actor tag
// and macro bound to its standard names and aliases.
func DefaultTagRegistry() *TagRegistry {
	r := NewTagRegistry()
	registerBuiltinTags(r)
	registerBuiltinMacros(r)
	return r
}

// DefaultAttributeRegistry returns a registry with the built-in
// attribute catalog bound.
func DefaultAttributeRegistry() *AttributeRegistry {
	r := NewAttributeRegistry()
	registerBuiltinAttributes(r)
	return r
}

func registerBuiltinTags(r *TagRegistry) {
	r.RegisterTag(ActorProvider(ActorSpec{
		Create: func(p *Parser, b *scene.Builder) (scene.Widget, error) {
			label := scene.NewLabel(b.Text, b.StyleName)
			return label, nil
		},
	}), "label", "text")

	r.RegisterTag(ActorProvider(ActorSpec{
		Create: func(p *Parser, b *scene.Builder) (scene.Widget, error) {
			return scene.NewTextButton(b.Text, b.StyleName), nil
		},
	}), "button", "textButton")

	r.RegisterTag(ActorProvider(ActorSpec{
		Create: func(p *Parser, b *scene.Builder) (scene.Widget, error) {
			return scene.NewTable(b.StyleName), nil
		},
	}), "table")

	r.RegisterTag(ActorProvider(ActorSpec{
		Create: func(p *Parser, b *scene.Builder) (scene.Widget, error) {
			return scene.NewTree(b.StyleName), nil
		},
	}), "tree")

	r.RegisterTag(ActorProvider(ActorSpec{
		Create: func(p *Parser, b *scene.Builder) (scene.Widget, error) {
			return scene.NewGroup(b.Vertical), nil
		},
	}), "group", "horizontalGroup")

	r.RegisterTag(ActorProvider(ActorSpec{
		Builder: func() *scene.Builder {
			b := scene.NewBuilder()
			b.Vertical = true
			return b
		},
		Create: func(p *Parser, b *scene.Builder) (scene.Widget, error) {
			return scene.NewGroup(b.Vertical), nil
		},
	}), "verticalGroup")

	r.RegisterTag(ActorProvider(ActorSpec{
		Create: func(p *Parser, b *scene.Builder) (scene.Widget, error) {
			return scene.NewScrollPane(b.StyleName), nil
		},
	}), "scrollPane", "scroll")

	r.RegisterTag(ActorProvider(ActorSpec{
		Create: func(p *Parser, b *scene.Builder) (scene.Widget, error) {
			return scene.NewProgressBar(b.Min, b.Max, b.StepSize, b.Vertical, b.StyleName), nil
		},
	}), "progressBar")

	r.RegisterTag(ActorProvider(ActorSpec{
		Create: func(p *Parser, b *scene.Builder) (scene.Widget, error) {
			return scene.NewSlider(b.Min, b.Max, b.StepSize, b.Vertical, b.StyleName), nil
		},
	}), "slider")
}

func registerBuiltinMacros(r *TagRegistry) {
	r.RegisterMacro(MacroProvider(ifMacro), "if", "test", "check")
	r.RegisterMacro(MacroProvider(anyNotNullMacro), "anyNotNull", "any")
	r.RegisterMacro(MacroProvider(replaceMacro), "replace", "noOp", "noop")
	r.RegisterMacro(MacroProvider(argumentMacro), "argument", "arg")
	r.RegisterMacro(MacroProvider(newTagMacro), "newTag", "tag")
	r.RegisterMacro(MacroProvider(importMacro(func(p *Parser) Resolver { return p.relativeResolver() })),
		"import", "importPath")
	r.RegisterMacro(MacroProvider(importMacro(func(p *Parser) Resolver { return p.absoluteResolver() })),
		"importAbsolute", "absoluteImport")
	r.RegisterMacro(MacroProvider(importMacro(func(p *Parser) Resolver { return p.classpathResolver() })),
		"importClasspath", "classpathImport")
}
