package parser

import (
	"fmt"

	"github.com/lmllang/lml/pkg/lml/scene"
)

// registerBuiltinAttributes fills the registry with the standard
// attribute catalog. Hosts may overwrite any of these or add their own.
func registerBuiltinAttributes(r *AttributeRegistry) {
	r.Register("id", func(p *Parser, tag Tag, w scene.Widget, raw string) error {
		w.SetID(p.ParseString(raw, w))
		return nil
	})
	r.Register("visible", func(p *Parser, tag Tag, w scene.Widget, raw string) error {
		target, ok := w.(interface{ SetVisible(bool) })
		if !ok {
			return fmt.Errorf("visible not supported by this widget")
		}
		value, err := p.ParseBool(raw, w)
		if err != nil {
			return err
		}
		target.SetVisible(value)
		return nil
	})
	r.Register("disabled", func(p *Parser, tag Tag, w scene.Widget, raw string) error {
		target, ok := w.(interface{ SetDisabled(bool) })
		if !ok {
			return fmt.Errorf("disabled not supported by this widget")
		}
		value, err := p.ParseBool(raw, w)
		if err != nil {
			return err
		}
		target.SetDisabled(value)
		return nil
	})
	r.Register("multiline", func(p *Parser, tag Tag, w scene.Widget, raw string) error {
		label, ok := w.(*scene.Label)
		if !ok {
			return fmt.Errorf("multiline applies only to label-like widgets")
		}
		value, err := p.ParseBool(raw, w)
		label.Multiline = value
		return err
	})
	r.Register("value", func(p *Parser, tag Tag, w scene.Widget, raw string) error {
		ranged, ok := w.(interface{ Range() *scene.ProgressBar })
		if !ok {
			return fmt.Errorf("value applies only to range widgets")
		}
		value, err := p.ParseFloat(raw, w)
		ranged.Range().Value = value
		return err
	})
	r.Register("onchange", func(p *Parser, tag Tag, w scene.Widget, raw string) error {
		target, ok := w.(interface{ SetOnChange(string) })
		if !ok {
			return fmt.Errorf("onChange not supported by this widget")
		}
		reference := p.ParseString(raw, w)
		if p.ParseAction(reference, w) == nil {
			return fmt.Errorf("unknown action reference %q", reference)
		}
		target.SetOnChange(reference)
		return nil
	})

	// Pad attributes exist in both scopes: inside a table cell they
	// configure the cell, elsewhere they apply to the table itself.
	r.RegisterCell("pad", func(p *Parser, tag Tag, w scene.Widget, cell *scene.Cell, raw string) error {
		value, err := p.ParseFloat(raw, w)
		cell.Pad(value)
		return err
	})
	r.Register("pad", func(p *Parser, tag Tag, w scene.Widget, raw string) error {
		table, ok := w.(*scene.Table)
		if !ok {
			return fmt.Errorf("pad applies only to tables outside a cell context")
		}
		value, err := p.ParseFloat(raw, w)
		table.PadLeft, table.PadRight, table.PadTop, table.PadBottom = value, value, value, value
		return err
	})
	for _, side := range []string{"Left", "Right", "Top", "Bottom"} {
		side := side
		r.RegisterCell("pad"+side, func(p *Parser, tag Tag, w scene.Widget, cell *scene.Cell, raw string) error {
			value, err := p.ParseFloat(raw, w)
			setPad(&cell.PadLeft, &cell.PadRight, &cell.PadTop, &cell.PadBottom, side, value)
			return err
		})
		r.Register("pad"+side, func(p *Parser, tag Tag, w scene.Widget, raw string) error {
			table, ok := w.(*scene.Table)
			if !ok {
				return fmt.Errorf("pad%s applies only to tables outside a cell context", side)
			}
			value, err := p.ParseFloat(raw, w)
			setPad(&table.PadLeft, &table.PadRight, &table.PadTop, &table.PadBottom, side, value)
			return err
		})
	}
	r.RegisterCell("grow", func(p *Parser, tag Tag, w scene.Widget, cell *scene.Cell, raw string) error {
		value, err := p.ParseBool(raw, w)
		cell.Grow = value
		return err
	})
	r.RegisterCell("align", func(p *Parser, tag Tag, w scene.Widget, cell *scene.Cell, raw string) error {
		value, err := p.ParseAlign(raw, w)
		cell.Align = value
		return err
	})
	r.RegisterCell("colspan", func(p *Parser, tag Tag, w scene.Widget, cell *scene.Cell, raw string) error {
		value, err := p.ParseInt(raw, w)
		if err != nil {
			return err
		}
		if value < 1 {
			return fmt.Errorf("colspan must be positive, got %d", value)
		}
		cell.Colspan = value
		return err
	})
	r.RegisterCell("row", func(p *Parser, tag Tag, w scene.Widget, cell *scene.Cell, raw string) error {
		value, err := p.ParseBool(raw, w)
		cell.EndRow = value
		return err
	})
	r.RegisterCell("expand", func(p *Parser, tag Tag, w scene.Widget, cell *scene.Cell, raw string) error {
		value, err := p.ParseBool(raw, w)
		cell.Grow = value
		return err
	})
}

func setPad(left, right, top, bottom *float64, side string, value float64) {
	switch side {
	case "Left":
		*left = value
	case "Right":
		*right = value
	case "Top":
		*top = value
	case "Bottom":
		*bottom = value
	}
}
