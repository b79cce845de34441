package main

import (
	"html"
	"path"
	"regexp"
	"strings"
)

const markupExt = ".md"

// resolveEntryPaths maps an entry URI to its Markdown source and its HTML
// destination, both relative to the htdocs root:
//
//	/2013/kyoto/     -> 2013/kyoto/index.md, 2013/kyoto/index.html
//	/about.html      -> about.md, about.html
//	/2013/kyoto-food -> 2013/kyoto-food.md, 2013/kyoto-food.html
func resolveEntryPaths(uri string) (source, dest string) {
	p := strings.TrimPrefix(uri, "/")
	switch {
	case p == "" || strings.HasSuffix(p, "/"):
		return p + "index" + markupExt, p + "index.html"
	case path.Ext(p) != "":
		return strings.TrimSuffix(p, path.Ext(p)) + markupExt, p
	default:
		return p + markupExt, p + ".html"
	}
}

var indexFileRe = regexp.MustCompile(`index\..*`)

// metaPath returns where the meta.rdf of an index-type entry goes: next to
// its source. Any source path mentioning "index" counts.
func metaPath(source string) (string, bool) {
	if !strings.Contains(source, "index") {
		return "", false
	}
	return indexFileRe.ReplaceAllString(source, "") + "meta.rdf", true
}

var descriptionTagRe = regexp.MustCompile(`(<!--.*?-->|<[^>]*>)`)

// cleanDescription turns an HTML abstract into the plain text of a meta
// description: markup stripped, entities decoded.
func cleanDescription(abstract string) string {
	s := descriptionTagRe.ReplaceAllString(abstract, "")
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	return html.UnescapeString(s)
}
