package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Printer renders command results in the selected format.
type Printer struct {
	Format string
	Writer io.Writer
}

// Print writes v. In text mode strings are written raw and everything else
// as indented JSON.
func (p *Printer) Print(v any) error {
	switch p.Format {
	case "yaml":
		enc := yaml.NewEncoder(p.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		return p.json(v)
	default:
		if s, ok := v.(string); ok {
			_, err := fmt.Fprintln(p.Writer, s)
			return err
		}
		return p.json(v)
	}
}

// Lines prints one line per item in text mode and a list otherwise.
func (p *Printer) Lines(items []string) error {
	if p.Format != "text" {
		if items == nil {
			items = []string{}
		}
		return p.Print(items)
	}
	for _, item := range items {
		if _, err := fmt.Fprintln(p.Writer, item); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) json(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(p.Writer, string(data))
	return err
}
