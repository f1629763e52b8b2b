// Package templates holds the embedded catalog of provider cancellation
// email templates and renders drafts from it.
package templates

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed cancellation.yaml
var cancellationYAML []byte

type entry struct {
	Provider string `yaml:"provider"`
	Subject  string `yaml:"subject"`
	Body     string `yaml:"body"`
}

type catalogFile struct {
	Templates []entry `yaml:"templates"`
	Default   entry   `yaml:"default"`
}

// Catalog resolves a provider name to a cancellation email template.
// Provider lookup is case-insensitive; unknown providers fall back to the
// generic template.
type Catalog struct {
	byProvider map[string]entry
	fallback   entry
}

// Draft is a rendered cancellation email.
type Draft struct {
	Subject string
	Body    string
}

// Fields supplies the values a template may reference.
type Fields struct {
	Provider  string
	UserName  string
	UserEmail string
}

// Load parses the embedded catalog. It is called once at startup and fails
// only if the embedded file is malformed.
func Load() (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(cancellationYAML, &file); err != nil {
		return nil, fmt.Errorf("parsing cancellation templates: %w", err)
	}
	if file.Default.Body == "" {
		return nil, fmt.Errorf("cancellation templates: missing default entry")
	}

	c := &Catalog{
		byProvider: make(map[string]entry, len(file.Templates)),
		fallback:   file.Default,
	}
	for _, e := range file.Templates {
		c.byProvider[strings.ToLower(e.Provider)] = e
	}
	return c, nil
}

// Has reports whether a provider has a dedicated template.
func (c *Catalog) Has(provider string) bool {
	_, ok := c.byProvider[strings.ToLower(provider)]
	return ok
}

// Providers lists the providers with dedicated templates.
func (c *Catalog) Providers() []string {
	providers := make([]string, 0, len(c.byProvider))
	for _, e := range c.byProvider {
		providers = append(providers, e.Provider)
	}
	return providers
}

// Render produces a draft for the given provider, falling back to the
// generic template when no dedicated one exists. Fields left empty render as
// bracketed placeholders so the user can fill them in before sending.
func (c *Catalog) Render(provider string, fields Fields) (*Draft, error) {
	e, ok := c.byProvider[strings.ToLower(provider)]
	if !ok {
		e = c.fallback
	}

	fields.Provider = provider
	if fields.UserName == "" {
		fields.UserName = "[Your Name]"
	}
	if fields.UserEmail == "" {
		fields.UserEmail = "[your-email@example.com]"
	}

	subject, err := render(e.Subject, fields)
	if err != nil {
		return nil, fmt.Errorf("rendering subject for %q: %w", provider, err)
	}
	body, err := render(e.Body, fields)
	if err != nil {
		return nil, fmt.Errorf("rendering body for %q: %w", provider, err)
	}
	return &Draft{Subject: subject, Body: strings.TrimRight(body, "\n")}, nil
}

func render(text string, fields Fields) (string, error) {
	tmpl, err := template.New("email").Parse(text)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, fields); err != nil {
		return "", err
	}
	return buf.String(), nil
}
