package main

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html"
	"html/template"
	"io"
	"io/fs"
	"path"
	texttemplate "text/template"

	"github.com/spf13/afero"
)

var ErrTemplateNotFound = errors.New("template not found")

// Shared {{define}} blocks, parsed along with every HTML template when present.
const globalTemplate = "global.html"

//go:embed tmpl/*
var embeddedTemplates embed.FS

// pageMeta is what every full page template gets. Titles are HTML, like the
// catalog strings they come from; the description is plain text.
type pageMeta struct {
	Title       template.HTML
	PageType    string
	Description string
	Language    string
}

type pageTemplateParam struct {
	pageMeta
	Body     template.HTML
	PrevNext template.HTML
	Nearby   template.HTML
}

type indexAllTemplateParam struct {
	pageMeta
	YearlyEntries template.HTML
	Intro         template.HTML
	IncludeNav    bool
}

type indexGenericTemplateParam struct {
	pageMeta
	Entries template.HTML
	Intro   template.HTML
}

type indexMainTemplateParam struct {
	pageMeta
	Latest   template.HTML
	Featured template.HTML
}

type selectionTemplateParam struct {
	Selection []*Entry
}

type prevNextTemplateParam struct {
	Previous template.HTML
	Next     template.HTML
	Language string
}

type nearbyTemplateParam struct {
	Nearby   template.HTML
	Language string
}

type locationListTemplateParam struct {
	Kind      LocationKind
	Locations []locationLink
}

type metaTemplateParam struct {
	URI   string
	Title string
}

type executor interface {
	ExecuteTemplate(w io.Writer, name string, data any) error
}

// templateEngine is a read-only template repository. Templates are parsed on
// first use and cached. Files ending in .html are HTML templates, anything
// else (meta.rdf) is plain text with an xml escaping function.
type templateEngine struct {
	templates     fs.FS
	templateCache map[string]executor
}

func newTemplateEngine(templates fs.FS) *templateEngine {
	return &templateEngine{
		templates:     templates,
		templateCache: make(map[string]executor),
	}
}

// templatesFor returns the bundled templates, or dir on afs when set.
func templatesFor(afs afero.Fs, dir string) fs.FS {
	if dir == "" {
		sub, err := fs.Sub(embeddedTemplates, "tmpl")
		if err != nil {
			panic(err)
		}
		return sub
	}
	return afero.NewIOFS(afero.NewBasePathFs(afs, dir))
}

func (te *templateEngine) render(name string, data any) ([]byte, error) {
	t, err := te.getTemplate(name)
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	if err := t.ExecuteTemplate(&b, name, data); err != nil {
		return nil, fmt.Errorf("executing template %v: %w", name, err)
	}
	return b.Bytes(), nil
}

// renderHTML renders a fragment meant to be embedded in another template.
func (te *templateEngine) renderHTML(name string, data any) (template.HTML, error) {
	b, err := te.render(name, data)
	if err != nil {
		return "", err
	}
	return template.HTML(b), nil
}

func (te *templateEngine) getTemplate(name string) (executor, error) {
	if t, ok := te.templateCache[name]; ok {
		return t, nil
	}
	if !te.exists(name) {
		return nil, fmt.Errorf("%w: %v", ErrTemplateNotFound, name)
	}

	var (
		t   executor
		err error
	)
	if path.Ext(name) == ".html" {
		files := []string{name}
		if name != globalTemplate && te.exists(globalTemplate) {
			files = append(files, globalTemplate)
		}
		t, err = template.ParseFS(te.templates, files...)
	} else {
		t, err = texttemplate.New(name).
			Funcs(texttemplate.FuncMap{"xml": html.EscapeString}).
			ParseFS(te.templates, name)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing template %v: %w", name, err)
	}

	te.templateCache[name] = t
	return t, nil
}

func (te *templateEngine) exists(name string) bool {
	fi, err := fs.Stat(te.templates, name)
	return err == nil && !fi.IsDir()
}
