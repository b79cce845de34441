// otcms is a static site generator for a travelogue and photo blog. It reads
// an ordered catalog of entries, renders each entry's Markdown source through
// a page template, and builds the archives: by year, by language, by place,
// plus a home page and an Atom feed. Entries sharing a city, state, region or
// country link to each other.
//
// Output files are published atomically, so the htdocs tree can be served
// while it is rebuilt.
package main

import (
	"fmt"
	"html"
	"html/template"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"

	"github.com/otiai10/copy"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Malformed closing sequence emitted around raw HTML blocks.
const strayDivClose = "<p></div></p>"

type Site struct {
	entries []*Entry
	index   *Index
	conf    *SiteConf

	fs     afero.Fs
	engine *templateEngine
	markup markupConverter
	pub    *publisher
	log    zerolog.Logger

	rnd *rand.Rand
	now func() time.Time
}

func ReadSite(conf *SiteConf, fs afero.Fs, logger zerolog.Logger) (*Site, error) {
	all, err := readCatalog(fs, conf.Catalog)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("catalog", conf.Catalog).Int("entries", len(all)).Msg("Catalog read")

	markup, err := newMarkupConverter(conf.Markup)
	if err != nil {
		return nil, err
	}

	return &Site{
		entries: all,
		index:   NewIndex(all),
		conf:    conf,
		fs:      fs,
		engine:  newTemplateEngine(templatesFor(fs, conf.TemplateDir)),
		markup:  markup,
		pub:     newPublisher(fs, conf.HtdocsDir),
		log:     logger,
		rnd:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:     time.Now,
	}, nil
}

// RenderAll renders every entry and, unless the site is private, the
// archives, home page and feed.
func (s *Site) RenderAll() error {
	s.log.Info().Str("htdocs", s.conf.HtdocsDir).Msg("Writing site")
	if err := s.RenderEntries(); err != nil {
		return err
	}

	if s.conf.Private {
		s.log.Info().Msg("Private catalog, skipping indexes")
		return nil
	}

	if err := s.RenderArchives(); err != nil {
		return err
	}
	return s.RenderAtom()
}

// RenderEntries renders the entries in catalog order. The first failure
// stops the run: a broken entry must not be published.
func (s *Site) RenderEntries() error {
	for i, e := range s.entries {
		if err := s.renderEntry(i, e); err != nil {
			return fmt.Errorf("entry %v: %w", e.URI, err)
		}
	}
	s.log.Info().Int("entries", len(s.entries)).Msg("Entries rendered")
	return nil
}

func (s *Site) renderEntry(i int, e *Entry) error {
	links := s.linksFor(i)
	prevNext, err := s.renderPrevNext(e, links)
	if err != nil {
		return err
	}
	nearbyHTML, err := s.renderNearby(e, links)
	if err != nil {
		return err
	}

	source, dest := resolveEntryPaths(e.URI)
	body, err := s.convertSource(source)
	if err != nil {
		return err
	}

	page, err := s.engine.render("page.html", pageTemplateParam{
		pageMeta: pageMeta{
			Title:       e.TitleHTML(),
			PageType:    "Page",
			Description: cleanDescription(e.Abstract),
			Language:    e.Language,
		},
		Body:     template.HTML(body),
		PrevNext: prevNext,
		Nearby:   nearbyHTML,
	})
	if err != nil {
		return err
	}
	if err := s.pub.Publish(dest, page); err != nil {
		return err
	}

	if rdf, ok := metaPath(source); ok {
		meta, err := s.engine.render("meta.rdf", metaTemplateParam{URI: e.URI, Title: html.UnescapeString(e.Title)})
		if err != nil {
			return err
		}
		if err := s.pub.Publish(rdf, meta); err != nil {
			return err
		}
	}

	e.Body = body
	return nil
}

func (s *Site) convertSource(source string) (string, error) {
	path := filepath.Join(s.conf.HtdocsDir, filepath.FromSlash(source))
	in, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return "", fmt.Errorf("reading source: %w", err)
	}
	body, err := s.markup.convert(in)
	if err != nil {
		return "", fmt.Errorf("converting %v: %w", path, err)
	}
	return strings.ReplaceAll(body, strayDivClose, "</div>"), nil
}

// CopyStaticFiles copies the configured static directory into htdocs. It
// works on the OS filesystem only.
func (s *Site) CopyStaticFiles() error {
	srcDir := s.conf.StaticFilesDir
	if srcDir == "" {
		return nil
	}
	dest := filepath.Join(s.conf.HtdocsDir, filepath.Base(srcDir))
	s.log.Info().Str("from", srcDir).Str("to", dest).Msg("Recursively copying static files")
	return copy.Copy(srcDir, dest)
}
