package main

import (
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	atom "github.com/thomas11/atomgenerator"
)

var ErrMissingPubdate = errors.New("feed entry has no pubdate")

// bodyRewrite is one step turning a rendered page body into feed content.
// "{link}" in repl stands for the entry's absolute URL.
type bodyRewrite struct {
	name string
	re   *regexp.Regexp
	repl string
}

func (r bodyRewrite) apply(body, link string) string {
	repl := strings.ReplaceAll(r.repl, "{link}", strings.ReplaceAll(link, "$", "$$"))
	return r.re.ReplaceAllString(body, repl)
}

// Applied in order. Feed readers get absolute image URLs, no lazy-loading
// markup, and captions as plain italics. The converter sometimes closes img
// tags with </img> and sometimes self-closes them, hence two caption steps.
var feedRewrites = []bodyRewrite{
	{
		name: "absolute-large-images",
		re:   regexp.MustCompile(`src="([0-9])`),
		repl: `src="{link}tn/lg_${1}`,
	},
	{
		name: "absolute-thumbnails",
		re:   regexp.MustCompile(`src="tn`),
		repl: `src="{link}tn`,
	},
	{
		name: "unwrap-anchors",
		re:   regexp.MustCompile(`<a href[^>]*>(.*)</a>`),
		repl: `${1}`,
	},
	{
		name: "drop-lazy-images",
		re:   regexp.MustCompile(`<img class="lazy".* />`),
		repl: ``,
	},
	{
		name: "widen-images",
		re:   regexp.MustCompile(`<img src`),
		repl: `<img width="600" src`,
	},
	{
		name: "unwrap-noscript",
		re:   regexp.MustCompile(`<noscript>(.*)</noscript>`),
		repl: `${1}`,
	},
	{
		name: "caption-closing-img",
		re:   regexp.MustCompile(`<div class="picCenter picCaption">\s*<img(.*)/img>\s*<p>(.*)</p>\s*</div>`),
		repl: `<img${1}/img><p><i>${2}</i></p>`,
	},
	{
		name: "caption-self-closing-img",
		re:   regexp.MustCompile(`<div class="picCenter picCaption">\s*<img(.*) />\s*<p>(.*)</p>\s*</div>`),
		repl: `<img${1} /><p><i>${2}</i></p>`,
	},
}

func feedContent(body, link string) string {
	for _, r := range feedRewrites {
		body = r.apply(body, link)
	}
	return body
}

func (s *Site) entryLink(e *Entry) string {
	return s.conf.SiteRoot + e.URI
}

// RenderAtom publishes atom.xml with the front of the catalog. Entries must
// have been rendered first: the feed content is derived from their bodies.
func (s *Site) RenderAtom() error {
	selection := s.entries[:min(s.conf.FeedEntries, len(s.entries))]
	atomXml, err := s.renderFeed(selection)
	if err != nil {
		return err
	}
	if err := s.pub.Publish("atom.xml", atomXml); err != nil {
		return err
	}
	s.log.Info().Int("items", len(selection)).Msg("Feed rendered")
	return nil
}

func (s *Site) renderFeed(selection []*Entry) ([]byte, error) {
	feed := atom.Feed{
		Title:   s.conf.SiteTitle,
		Link:    s.conf.SiteRoot + "/",
		PubDate: s.now(),
	}
	feed.AddAuthor(atom.Author{
		Name: s.conf.Author,
		Uri:  s.conf.SiteRoot + "/",
	})

	for _, e := range selection {
		entry, err := s.entryForFeed(e)
		if err != nil {
			return nil, err
		}
		feed.AddEntry(entry)
	}

	errs := feed.Validate()
	if len(errs) > 0 {
		s.log.Error().Msg("Atom feed is not valid!")
		for _, e := range errs {
			s.log.Error().Err(e).Send()
		}
		return nil, errs[0]
	}

	generated, err := feed.GenXml()
	if err != nil {
		return nil, err
	}
	return s.completeFeed(generated, selection)
}

func (s *Site) entryForFeed(e *Entry) (*atom.Entry, error) {
	if e.Pubdate.IsZero() {
		return nil, fmt.Errorf("%w: %v", ErrMissingPubdate, e.URI)
	}
	link := s.entryLink(e)
	entry := &atom.Entry{
		// Atom titles are text, catalog titles are HTML.
		Title:       html.UnescapeString(e.Title),
		Description: e.Abstract,
		Link:        link,
		PubDate:     e.Pubdate,
		Content:     feedContent(e.Body, link),
	}

	// Places double as categories.
	for _, kind := range indexingOrder {
		for _, name := range e.Places[kind] {
			entry.AddCategory(atom.Category{Term: name})
		}
	}
	return entry, nil
}
