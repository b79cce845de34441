package main

import (
	"bytes"
	"fmt"

	"github.com/russross/blackfriday/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Both converters pass raw HTML through: entry sources embed gallery markup.
type markupConverter interface {
	convert(in []byte) (string, error)
}

const (
	markupBlackfriday = "blackfriday"
	markupGoldmark    = "goldmark"
)

func newMarkupConverter(name string) (markupConverter, error) {
	switch name {
	case "", markupBlackfriday:
		return newBlackfridayConverter(), nil
	case markupGoldmark:
		return newGoldmarkConverter(), nil
	}
	return nil, fmt.Errorf("unknown markup converter %q", name)
}

var (
	htmlFlags = blackfriday.UseXHTML |
		blackfriday.Smartypants |
		blackfriday.SmartypantsFractions |
		blackfriday.SmartypantsLatexDashes

	extensions = blackfriday.NoIntraEmphasis |
		blackfriday.Tables |
		blackfriday.FencedCode |
		blackfriday.Autolink |
		blackfriday.Strikethrough
)

type blackfridayConverter struct {
	flags      blackfriday.HTMLFlags
	extensions blackfriday.Extensions
}

func newBlackfridayConverter() markupConverter {
	return &blackfridayConverter{htmlFlags, extensions}
}

// The HTML renderer keeps per-document state, so each call gets its own.
func (b *blackfridayConverter) convert(in []byte) (string, error) {
	r := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{Flags: b.flags})
	return string(blackfriday.Run(in, blackfriday.WithRenderer(r), blackfriday.WithExtensions(b.extensions))), nil
}

type goldmarkConverter struct {
	md goldmark.Markdown
}

func newGoldmarkConverter() markupConverter {
	return &goldmarkConverter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
			goldmark.WithRendererOptions(
				gmhtml.WithXHTML(),
				gmhtml.WithUnsafe(),
			),
		),
	}
}

func (g *goldmarkConverter) convert(in []byte) (string, error) {
	var b bytes.Buffer
	if err := g.md.Convert(in, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}
