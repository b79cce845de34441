package main

import (
	"io"
	"math/rand/v2"
	"path/filepath"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

const testRoot = "/site"

func writeFile(c *qt.C, fs afero.Fs, path, content string) {
	c.Helper()
	c.Assert(fs.MkdirAll(filepath.Dir(path), 0755), qt.IsNil)
	c.Assert(afero.WriteFile(fs, path, []byte(content), 0644), qt.IsNil)
}

func readFile(c *qt.C, fs afero.Fs, path string) string {
	c.Helper()
	b, err := afero.ReadFile(fs, path)
	c.Assert(err, qt.IsNil)
	return string(b)
}

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func testConf() *SiteConf {
	return &SiteConf{
		SiteRoot:     "https://example.com",
		SiteTitle:    "Test site",
		Author:       "Joe User",
		HomeTitle:    "Home",
		Catalog:      filepath.Join(testRoot, "catalog.yaml"),
		HtdocsDir:    testRoot,
		Markup:       markupBlackfriday,
		HomeLatest:   1,
		HomeFeatured: 1,
		FeedEntries:  20,
		MaxNearby:    5,
	}
}

// newTestSite reads a site from an in-memory htdocs tree made of files,
// relative to testRoot.
func newTestSite(c *qt.C, conf *SiteConf, files map[string]string) (*Site, afero.Fs) {
	c.Helper()
	fs := afero.NewMemMapFs()
	c.Assert(fs.MkdirAll(testRoot, 0755), qt.IsNil)
	for name, content := range files {
		writeFile(c, fs, filepath.Join(testRoot, name), content)
	}
	s, err := ReadSite(conf, fs, zerolog.New(io.Discard))
	c.Assert(err, qt.IsNil)
	s.rnd = newTestRand()
	s.now = func() time.Time { return time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC) }
	return s, fs
}

func testEntry(uri string, year int, places map[LocationKind][]string) *Entry {
	e := &Entry{URI: uri, Title: uri, Year: year}
	for k, names := range places {
		e.Places[k] = names
	}
	return e
}

func entryURIs(es []*Entry) []string {
	uris := make([]string, len(es))
	for i, e := range es {
		uris[i] = e.URI
	}
	return uris
}
