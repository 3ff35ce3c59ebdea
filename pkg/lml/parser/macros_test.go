package parser

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lmlerrors "github.com/lmllang/lml/pkg/lml/errors"
	"github.com/lmllang/lml/pkg/lml/scene"
)

func TestIfMacroSingleValue(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"true literal", `<@if true><label>yes</label></@if>`, "label(yes)"},
		{"false literal", `<@if false><label>yes</label></@if>`, ""},
		{"null literal", `<@if null><label>yes</label></@if>`, ""},
		{"no attributes", `<@if><label>yes</label></@if>`, ""},
		{"arbitrary text is truthy", `<@if anything><label>yes</label></@if>`, "label(yes)"},
		{"alias", `<@check true><label>yes</label></@check>`, "label(yes)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			roots, err := p.Parse(tt.template)
			require.NoError(t, err)
			assert.Equal(t, tt.want, outlineAll(roots))
		})
	}
}

func TestIfMacroElseDivider(t *testing.T) {
	p := New()
	roots, err := p.Parse(`<@if false><label>yes</label><@if:else/><label>no</label></@if>`)
	require.NoError(t, err)
	assert.Equal(t, "label(no)", outlineAll(roots))

	roots, err = p.Parse(`<@if true><label>yes</label><@if:else/><label>no</label></@if>`)
	require.NoError(t, err)
	assert.Equal(t, "label(yes)", outlineAll(roots))
}

func TestIfMacroComparison(t *testing.T) {
	tests := []struct {
		equation string
		want     bool
	}{
		{"3 &gt; 2", true},
		{"2 &gt; 3", false},
		{"10 &gt; 9", true}, // numeric, not lexicographic
		{"apple &lt; banana", true},
		{"a == a", true},
		{"a != a", false},
		{"2.5 &lt;= 2.5", true},
		{`apple&amp;pie == "apple&pie"`, true}, // operands decode entities too
		{"a&amp;b != a&b", false},
	}
	for _, tt := range tests {
		t.Run(tt.equation, func(t *testing.T) {
			p := New()
			roots, err := p.Parse(`<@if ` + tt.equation + `><label>yes</label></@if>`)
			require.NoError(t, err)
			if tt.want {
				assert.Equal(t, "label(yes)", outlineAll(roots))
			} else {
				assert.Empty(t, roots)
			}
		})
	}
}

func TestIfMacroBadArityFatal(t *testing.T) {
	p := New()
	_, err := p.Parse(`<@if a b><label>yes</label></@if>`)
	require.Error(t, err)
	le, ok := err.(*lmlerrors.Error)
	require.True(t, ok)
	assert.Equal(t, lmlerrors.ClassMacro, le.Class)
	assert.True(t, le.Fatal)
}

func TestIfMacroActionCondition(t *testing.T) {
	actions := NewActionRegistry()
	actions.Register("isAdmin", func(arg any) any { return true })
	actions.Register("isGuest", func(arg any) any { return false })
	p := New(WithActions(actions))

	roots, err := p.Parse(`<@if $isAdmin><label>admin</label></@if>`)
	require.NoError(t, err)
	assert.Equal(t, "label(admin)", outlineAll(roots))

	roots, err = p.Parse(`<@if $isGuest><label>admin</label></@if>`)
	require.NoError(t, err)
	assert.Empty(t, roots)
}

func TestAnyNotNullMacro(t *testing.T) {
	tests := []struct {
		name  string
		attrs string
		want  bool
	}{
		{"no attributes", "", false},
		{"all falsy", "null false", false},
		{"first truthy wins", `null false "" x`, true},
		{"one truthy", "null yes", true},
		{"single truthy", "value", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			roots, err := p.Parse(`<@anyNotNull ` + tt.attrs + `><label>yes</label></@anyNotNull>`)
			require.NoError(t, err)
			if tt.want {
				assert.Equal(t, "label(yes)", outlineAll(roots))
			} else {
				assert.Empty(t, roots)
			}
		})
	}
}

func TestAnyNotNullShortCircuits(t *testing.T) {
	invoked := 0
	actions := NewActionRegistry()
	actions.Register("nothing", func(arg any) any { return nil })
	actions.Register("something", func(arg any) any { invoked++; return "x" })
	p := New(WithActions(actions))

	roots, err := p.Parse(`<@any $nothing $something $something><label>yes</label></@any>`)
	require.NoError(t, err)
	assert.Equal(t, "label(yes)", outlineAll(roots))
	assert.Equal(t, 1, invoked, "evaluation must stop at the first non-null result")
}

func TestReplaceMacroPrivateArguments(t *testing.T) {
	p := New()
	p.SetArgument("who", "Globe")
	roots, err := p.Parse(`<@replace who=World><label>Hello {who}!</label></@replace><label>{who}</label>`)
	require.NoError(t, err)
	assert.Equal(t, "label(Hello World!) label(Globe)", outlineAll(roots))

	// The macro's private map never leaks into the document arguments.
	value, ok := p.Argument("who")
	require.True(t, ok)
	assert.Equal(t, "Globe", value)
}

func TestReplaceMacroLeavesUnknownPlaceholders(t *testing.T) {
	p := New()
	roots, err := p.Parse(`<@replace a=1><label>{a}{b}</label></@replace>`)
	require.NoError(t, err)
	assert.Equal(t, "label(1{b})", outlineAll(roots))
}

func TestArgumentMacro(t *testing.T) {
	p := New()
	roots, err := p.Parse(`<@arg title Hello/><label text={title}/>`)
	require.NoError(t, err)
	assert.Equal(t, "label(Hello)", outlineAll(roots))

	_, err = p.Parse(`<@arg onlyName/>`)
	require.Error(t, err)
	assert.Equal(t, lmlerrors.ClassMacro, err.(*lmlerrors.Error).Class)
}

func TestNewTagRegistersProvider(t *testing.T) {
	reg := DefaultTagRegistry()
	actions := NewActionRegistry()
	actions.Register("makeBox", func(arg any) any {
		b := arg.(*scene.Builder)
		return scene.NewTable(b.StyleName)
	})

	p := New(WithTagRegistry(reg), WithActions(actions))
	roots, err := p.Parse(`<@newTag box;fancyBox $makeBox/><box><label>x</label></box>`)
	require.NoError(t, err)
	require.Empty(t, p.Errors())
	assert.Equal(t, "table[label(x)]", outlineAll(roots))

	// Registration outlives the parse for sessions sharing the registry,
	// and the creator action travels with the provider.
	second := New(WithTagRegistry(reg))
	roots, err = second.Parse(`<fancyBox style=fancy/>`)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "fancy", roots[0].(*scene.Table).Style)
}

func TestNewTagBuilderCreator(t *testing.T) {
	actions := NewActionRegistry()
	actions.Register("makeBar", func(arg any) any {
		b := arg.(*scene.Builder)
		return scene.NewProgressBar(b.Min, b.Max, b.StepSize, b.Vertical, b.StyleName)
	})
	actions.Register("barDefaults", func(arg any) any {
		b := scene.NewBuilder()
		b.Max = 100
		return b
	})
	p := New(WithActions(actions))
	roots, err := p.Parse(`<@newTag meter $makeBar $barDefaults/><meter/>`)
	require.NoError(t, err)
	assert.Equal(t, 100.0, roots[0].(*scene.ProgressBar).Max)
}

func TestNewTagArityFatal(t *testing.T) {
	p := New()
	_, err := p.Parse(`<@newTag box/>`)
	require.Error(t, err)
	le := err.(*lmlerrors.Error)
	assert.Equal(t, lmlerrors.ClassMacro, le.Class)
	assert.True(t, le.Fatal)
}

func TestNewTagUnresolvableCreatorFatal(t *testing.T) {
	p := New()
	_, err := p.Parse(`<@newTag box $nope/>`)
	require.Error(t, err)
	assert.Equal(t, lmlerrors.ClassMacro, err.(*lmlerrors.Error).Class)
}

// plainWidget implements Widget without the flag setters the built-in
// kinds inherit from scene.Base.
type plainWidget struct {
	id   string
	data map[string]any
}

func (w *plainWidget) ID() string      { return w.id }
func (w *plainWidget) SetID(id string) { w.id = id }

func (w *plainWidget) Set(key string, value any) {
	if w.data == nil {
		w.data = make(map[string]any)
	}
	w.data[key] = value
}

func (w *plainWidget) Get(key string) any { return w.data[key] }

func TestNewTagWidgetWithoutFlagSupport(t *testing.T) {
	actions := NewActionRegistry()
	actions.Register("makePlain", func(arg any) any {
		return &plainWidget{}
	})

	// Flag attributes on a widget that cannot carry them must surface
	// as recoverable errors, never abort the parse.
	p := New(WithActions(actions))
	roots, err := p.Parse(`<@newTag plain $makePlain/><plain visible=true/><plain disabled=false/>`)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	require.Len(t, p.Errors(), 2)
	assert.Equal(t, lmlerrors.ClassParse, p.Errors()[0].Class)
	assert.Contains(t, p.Errors()[0].Message, "visible not supported")
	assert.Contains(t, p.Errors()[1].Message, "disabled not supported")
}

func TestImportClasspath(t *testing.T) {
	classpath := fstest.MapFS{
		"partials/header.lml": &fstest.MapFile{Data: []byte(`<label>imported</label>`)},
	}
	p := New(WithClasspath(classpath))
	roots, err := p.Parse(`<table><@importClasspath partials/header.lml/></table>`)
	require.NoError(t, err)
	assert.Equal(t, "table[label(imported)]", outlineAll(roots))
}

func TestImportIsTransparent(t *testing.T) {
	classpath := fstest.MapFS{
		"row.lml": &fstest.MapFile{Data: []byte(`<label row=true>cell</label>`)},
	}
	p := New(WithClasspath(classpath))
	imported, err := p.Parse(`<table><@importClasspath row.lml/><label>tail</label></table>`)
	require.NoError(t, err)

	inlined, err := p.Parse(`<table><label row=true>cell</label><label>tail</label></table>`)
	require.NoError(t, err)

	assert.Equal(t, outlineAll(inlined), outlineAll(imported))
	assert.True(t, imported[0].(*scene.Table).Cells[0].EndRow)
}

func TestImportContentArgument(t *testing.T) {
	classpath := fstest.MapFS{
		"frame.lml": &fstest.MapFile{Data: []byte(`<table><label>{slot}</label></table>`)},
	}
	p := New(WithClasspath(classpath))
	roots, err := p.Parse(`<@importClasspath frame.lml slot>BODY</@importClasspath>`)
	require.NoError(t, err)
	assert.Equal(t, "table[label(BODY)]", outlineAll(roots))
}

func TestImportMissingTemplateFatal(t *testing.T) {
	p := New(WithClasspath(fstest.MapFS{}))
	_, err := p.Parse(`<@importClasspath absent.lml/>`)
	require.Error(t, err)
	le := err.(*lmlerrors.Error)
	assert.Equal(t, lmlerrors.ClassImport, le.Class)
	assert.True(t, le.Fatal)
}

func TestImportWithoutClasspathFatal(t *testing.T) {
	p := New()
	_, err := p.Parse(`<@importClasspath anything.lml/>`)
	require.Error(t, err)
	assert.Equal(t, lmlerrors.ClassImport, err.(*lmlerrors.Error).Class)
}

func TestImportCycleFatal(t *testing.T) {
	classpath := fstest.MapFS{
		"a.lml": &fstest.MapFile{Data: []byte(`<@importClasspath b.lml/>`)},
		"b.lml": &fstest.MapFile{Data: []byte(`<@importClasspath a.lml/>`)},
	}
	p := New(WithClasspath(classpath))
	_, err := p.Parse(`<@importClasspath a.lml/>`)
	require.Error(t, err)
	le := err.(*lmlerrors.Error)
	assert.Equal(t, lmlerrors.ClassImport, le.Class)
	assert.Contains(t, le.Message, "cyclic")
}

func TestImportRelativeToFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "partial.lml"), []byte(`<label>from file</label>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.lml"), []byte(`<group><@import partial.lml/></group>`), 0o644))

	p := New()
	roots, err := p.ParseFile(filepath.Join(dir, "main.lml"))
	require.NoError(t, err)
	assert.Equal(t, "group[label(from file)]", outlineAll(roots))
}

func TestImportSelfCycleFatal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "self.lml"), []byte(`<@import self.lml/>`), 0o644))

	// Open the root through an uncleaned path; its label must still
	// collide with the label the relative import resolves to.
	p := New()
	_, err := p.ParseFile(dir + "/./self.lml")
	require.Error(t, err)
	le := err.(*lmlerrors.Error)
	assert.Equal(t, lmlerrors.ClassImport, le.Class)
	assert.Contains(t, le.Message, "cyclic")
}

func TestImportAbsolute(t *testing.T) {
	dir := t.TempDir()
	full := filepath.Join(dir, "abs.lml")
	require.NoError(t, os.WriteFile(full, []byte(`<label>absolute</label>`), 0o644))

	p := New()
	roots, err := p.Parse(`<@importAbsolute "` + full + `"/>`)
	require.NoError(t, err)
	assert.Equal(t, "label(absolute)", outlineAll(roots))
}

func TestNestedMacros(t *testing.T) {
	p := New()
	roots, err := p.Parse(`<group><@if true><label>outer</label><@if true><label>inner</label></@if></@if></group>`)
	require.NoError(t, err)
	require.Empty(t, p.Errors())
	assert.Equal(t, "group[label(outer) label(inner)]", outlineAll(roots))
}

func TestMacroErrorsNameSplicedSource(t *testing.T) {
	p := New()
	_, err := p.Parse(`<@if true><label colour=red>x</label></@if>`)
	require.NoError(t, err)
	require.Len(t, p.Errors(), 1)
	assert.Contains(t, p.Errors()[0].Source, "'if' macro result")
}

func TestUnknownMacroFatal(t *testing.T) {
	p := New()
	_, err := p.Parse(`<@bogus/>`)
	require.Error(t, err)
	assert.True(t, err.(*lmlerrors.Error).Fatal)
}
