package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	"reflect"
	"strings"
	"sync"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// Template names.
const (
	Welcome        = "welcome"
	ProfileUpdated = "profile_updated"
)

var names = []string{Welcome, ProfileUpdated}

// Known reports whether name has embedded templates.
func Known(name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// set holds the three parsed parts of one email.
type set struct {
	subject *texttpl.Template
	text    *texttpl.Template
	html    *htmpl.Template
}

var (
	loadOnce sync.Once
	loaded   map[string]set
	loadErr  error
)

// fallback supports pipe usage: {{ .Value | default "Fallback" }}
func fallback(def any, value any) any {
	switch x := value.(type) {
	case nil:
		return def
	case string:
		if strings.TrimSpace(x) == "" {
			return def
		}
		return x
	}
	if rv := reflect.ValueOf(value); !rv.IsValid() || rv.IsZero() {
		return def
	}
	return value
}

func funcs() map[string]any {
	return map[string]any{
		"now":     func() time.Time { return time.Now().UTC() },
		"upper":   strings.ToUpper,
		"join":    strings.Join,
		"default": fallback,
	}
}

func parseText(file string) (*texttpl.Template, error) {
	tpl, err := texttpl.New(file).Funcs(funcs()).ParseFS(FS, file)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", file, err)
	}
	return tpl, nil
}

func load() {
	loaded = make(map[string]set, len(names))
	for _, name := range names {
		var s set
		if s.subject, loadErr = parseText(name + ".subject.tmpl"); loadErr != nil {
			return
		}
		if s.text, loadErr = parseText(name + ".text.tmpl"); loadErr != nil {
			return
		}
		file := name + ".html.tmpl"
		if s.html, loadErr = htmpl.New(file).Funcs(funcs()).ParseFS(FS, file); loadErr != nil {
			loadErr = fmt.Errorf("parse %q: %w", file, loadErr)
			return
		}
		loaded[name] = s
	}
}

func execute(name, part string, run func(*bytes.Buffer) error) (string, error) {
	var buf bytes.Buffer
	if err := run(&buf); err != nil {
		return "", fmt.Errorf("render %s.%s: %w", name, part, err)
	}
	return buf.String(), nil
}

// Render produces the subject, plain-text and HTML bodies of the named
// email. Templates are parsed once on first use.
func Render(name string, data any) (subject, text, html string, err error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return "", "", "", loadErr
	}
	s, ok := loaded[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown template %q", name)
	}

	if subject, err = execute(name, "subject", func(b *bytes.Buffer) error { return s.subject.Execute(b, data) }); err != nil {
		return "", "", "", err
	}
	if text, err = execute(name, "text", func(b *bytes.Buffer) error { return s.text.Execute(b, data) }); err != nil {
		return "", "", "", err
	}
	if html, err = execute(name, "html", func(b *bytes.Buffer) error { return s.html.Execute(b, data) }); err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), text, html, nil
}
