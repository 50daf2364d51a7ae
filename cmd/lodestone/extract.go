package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/lodestone"
	"github.com/fwojciec/lodestone/goquery"
	"golang.org/x/sync/errgroup"
)

// FieldReport describes everything the parser can tell about one field.
type FieldReport struct {
	Field     string   `json:"field"`
	Found     bool     `json:"found"`
	Children  int      `json:"children,omitempty"`
	Text      string   `json:"text,omitempty"`
	Tooltip   string   `json:"tooltip,omitempty"`
	Attribute *string  `json:"attribute,omitempty"`
	Groups    []string `json:"groups,omitempty"`
	Href      string   `json:"href,omitempty"`
	ID        string   `json:"id,omitempty"`
	Image     string   `json:"image,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// PageReport holds the field reports for one input file.
type PageReport struct {
	File   string        `json:"file"`
	Fields []FieldReport `json:"fields"`
}

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	set, err := deps.Definitions.Definitions(deps.Ctx, c.Name)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lodestone.ErrorMessage(err))
		return err
	}

	if err := c.checkStdin(); err != nil {
		return err
	}

	reports := make([]PageReport, len(c.Files))
	g, ctx := errgroup.WithContext(deps.Ctx)
	if c.Concurrency > 0 {
		g.SetLimit(c.Concurrency)
	}
	for i, file := range c.Files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			root, err := c.parseFile(deps.Stdin, file)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			p := lodestone.NewParser(root, lodestone.WithBaseURL(c.BaseURL))
			reports[i] = PageReport{File: file, Fields: InspectPage(p, set)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if err := c.write(deps.Stdout, reports); err != nil {
		return err
	}

	failed := 0
	for _, r := range reports {
		for _, f := range r.Fields {
			if len(f.Errors) > 0 {
				failed++
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d field(s) failed to extract", failed)
	}
	return nil
}

func (c *ExtractCmd) checkStdin() error {
	n := 0
	for _, f := range c.Files {
		if f == "-" {
			n++
		}
	}
	if n > 1 {
		return fmt.Errorf("stdin (-) can only be given once")
	}
	return nil
}

func (c *ExtractCmd) parseFile(stdin io.Reader, file string) (*goquery.Node, error) {
	if file == "-" {
		return goquery.Parse(stdin)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return goquery.Parse(bytes.NewReader(data))
}

func (c *ExtractCmd) write(w io.Writer, reports []PageReport) error {
	if c.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	for _, r := range reports {
		for _, f := range r.Fields {
			fmt.Fprintln(w, formatField(r.File, f))
		}
	}
	return nil
}

func formatField(file string, f FieldReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s found=%t", file, f.Field, f.Found)
	if f.Children > 0 {
		fmt.Fprintf(&b, " children=%d", f.Children)
	}
	if f.Text != "" {
		fmt.Fprintf(&b, " text=%q", f.Text)
	}
	if f.Tooltip != "" {
		fmt.Fprintf(&b, " tooltip=%q", f.Tooltip)
	}
	if f.Attribute != nil {
		fmt.Fprintf(&b, " attribute=%q", *f.Attribute)
	}
	if len(f.Groups) > 0 {
		fmt.Fprintf(&b, " groups=%q", f.Groups)
	}
	if f.Href != "" {
		fmt.Fprintf(&b, " href=%s", f.Href)
	}
	if f.ID != "" {
		fmt.Fprintf(&b, " id=%s", f.ID)
	}
	if f.Image != "" {
		fmt.Fprintf(&b, " image=%s", f.Image)
	}
	for _, e := range f.Errors {
		fmt.Fprintf(&b, " error=%q", e)
	}
	return b.String()
}

// InspectPage runs every applicable parser operation for each field in set,
// in field name order. Operation errors are recorded on the field report.
func InspectPage(p *lodestone.Parser, set lodestone.DefinitionSet) []FieldReport {
	reports := make([]FieldReport, 0, len(set))
	for _, name := range set.Names() {
		reports = append(reports, inspectField(p, name, set[name]))
	}
	return reports
}

func inspectField(p *lodestone.Parser, name string, def lodestone.Definition) FieldReport {
	r := FieldReport{Field: name, Found: p.HasNode(def)}
	if !r.Found {
		return r
	}

	if children, ok := p.QueryChildNodes(def); ok {
		r.Children = len(children)
	}
	r.Text, _ = p.ParseInnerText(def)
	r.Tooltip, _ = p.ParseTooltip(def)

	if value, ok := p.ParseAttribute(def); ok {
		r.Attribute = &value
	}

	if m, ok, err := p.ParseInnerTextRegex(def); err != nil {
		r.Errors = append(r.Errors, lodestone.ErrorMessage(err))
	} else if ok {
		r.Groups = m.Groups
	}

	if u, ok, err := p.ParseHref(def); err != nil {
		r.Errors = append(r.Errors, lodestone.ErrorMessage(err))
	} else if ok {
		r.Href = u.String()
		r.ID, _, _ = p.ParseHrefID(def)
	}

	if u, ok, err := p.ParseImageSource(def); err != nil {
		r.Errors = append(r.Errors, lodestone.ErrorMessage(err))
	} else if ok {
		r.Image = u.String()
	}

	return r
}
