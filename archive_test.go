package main

import (
	"slices"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/spf13/afero"
)

func TestRenderFullArchive(t *testing.T) {
	c := qt.New(t)
	s, fs := newFullTestSite(c)
	c.Assert(s.RenderArchives(), qt.IsNil)

	all := readFile(c, fs, "/site/all.html")
	c.Assert(all, qt.Contains, "<title>Archives</title>")
	c.Assert(all, qt.Contains, `class="langnav"`)
	// Years in catalog order, undated entries left out.
	i2013 := strings.Index(all, `<h2 id="y2013">2013</h2>`)
	i2012 := strings.Index(all, `<h2 id="y2012">2012</h2>`)
	c.Assert(i2013 >= 0 && i2012 > i2013, qt.IsTrue)
	c.Assert(all, qt.Not(qt.Contains), "About me")

	year := readFile(c, fs, "/site/2013/index.html")
	c.Assert(year, qt.Contains, "<title>Archives: 2013</title>")
	c.Assert(year, qt.Contains, "Autumn in Kyoto")
	c.Assert(year, qt.Not(qt.Contains), "Montreal in the snow")
}

func TestRenderLanguageArchives(t *testing.T) {
	c := qt.New(t)
	s, fs := newFullTestSite(c)
	c.Assert(s.RenderArchives(), qt.IsNil)

	fr := readFile(c, fs, "/site/all_fr.html")
	c.Assert(fr, qt.Contains, "<title>Archives: en Français</title>")
	c.Assert(fr, qt.Contains, `<html lang="fr">`)
	c.Assert(fr, qt.Contains, "Tout ce qui a été écrit en français")
	c.Assert(fr, qt.Contains, "Une journée à Osaka")
	c.Assert(fr, qt.Not(qt.Contains), `id="y2012"`)
	c.Assert(fr, qt.Not(qt.Contains), `class="langnav"`)

	en := readFile(c, fs, "/site/all_en.html")
	c.Assert(en, qt.Contains, `id="y2012"`)
	c.Assert(en, qt.Contains, "Autumn in Kyoto")
	c.Assert(en, qt.Not(qt.Contains), "Osaka")
}

func TestRenderGeoPages(t *testing.T) {
	c := qt.New(t)
	s, fs := newFullTestSite(c)
	c.Assert(s.RenderArchives(), qt.IsNil)

	geo := readFile(c, fs, "/site/geo/index.html")
	c.Assert(geo, qt.Contains, "<title>Archives: Around the world</title>")
	c.Assert(geo, qt.Contains, `<a href="/geo/japan.html">Japan</a> (2)`)
	c.Assert(geo, qt.Contains, "<h2>State</h2>")
	// Kinds without locations get no block.
	c.Assert(geo, qt.Not(qt.Contains), "<h2>Region</h2>")
	iCountry := strings.Index(geo, "<h2>Country</h2>")
	iCity := strings.Index(geo, "<h2>City</h2>")
	c.Assert(iCountry >= 0 && iCity > iCountry, qt.IsTrue)

	japan := readFile(c, fs, "/site/geo/japan.html")
	c.Assert(japan, qt.Contains, "<title>Entries in Country: Japan</title>")
	c.Assert(japan, qt.Contains, "Autumn in Kyoto")
	c.Assert(japan, qt.Contains, "Une journée à Osaka")
}

func TestRenderLocationPageKeepsDuplicates(t *testing.T) {
	c := qt.New(t)
	conf := testConf()
	s, fs := newTestSite(c, conf, map[string]string{
		"catalog.yaml": `
- URI: /a.html
  Title: Twice in Georgia
  Year: 2013
  Abstract: a
  Thumbnail: a.jpg
  State: Georgia
  Region: Georgia
- URI: /b.html
  Title: Elsewhere
  Year: 2013
  Abstract: b
  Thumbnail: b.jpg
`,
		"2013/.keep": "",
		"geo/.keep":  "",
	})

	c.Assert(s.RenderArchives(), qt.IsNil)
	georgia := readFile(c, fs, "/site/geo/georgia.html")
	c.Assert(strings.Count(georgia, "Twice in Georgia</a>"), qt.Equals, 2)
}

func TestRenderHome(t *testing.T) {
	c := qt.New(t)
	s, fs := newFullTestSite(c)
	s.conf.HomeFeatured = 2
	c.Assert(s.RenderArchives(), qt.IsNil)

	home := readFile(c, fs, "/site/index.html")
	c.Assert(home, qt.Contains, "<title>Home</title>")
	c.Assert(home, qt.Contains, `<body class="Home">`)
	c.Assert(home, qt.Contains, "Autumn in Kyoto")
	// The whole featurable pool: both other entries with an abstract and a
	// thumbnail.
	c.Assert(home, qt.Contains, "Une journée à Osaka")
	c.Assert(home, qt.Contains, "Montreal in the snow")
	c.Assert(home, qt.Not(qt.Contains), "About me")
}

func TestHomeSelection(t *testing.T) {
	c := qt.New(t)
	s, _ := newFullTestSite(c)

	latest, featured, err := s.homeSelection()
	c.Assert(err, qt.IsNil)
	c.Assert(entryURIs(latest), qt.DeepEquals, []string{"/2013/kyoto/"})
	c.Assert(featured, qt.HasLen, 1)
	c.Assert(featured[0].URI, qt.Not(qt.Equals), "/2013/kyoto/")
	c.Assert(featured[0].URI, qt.Not(qt.Equals), "/about")

	s.conf.HomeLatest = 10
	latest, _, err = s.homeSelection()
	c.Assert(err, qt.ErrorIs, ErrPopulationTooSmall)
	c.Assert(latest, qt.IsNil)
}

func TestRenderArchivesNotEnoughFeatured(t *testing.T) {
	c := qt.New(t)
	s, fs := newFullTestSite(c)
	s.conf.HomeFeatured = 4

	err := s.RenderArchives()
	c.Assert(err, qt.ErrorIs, ErrPopulationTooSmall)

	exists, _ := afero.Exists(fs, "/site/index.html")
	c.Assert(exists, qt.IsFalse)
}

func TestRenderYearArchivesMissingDir(t *testing.T) {
	c := qt.New(t)
	s, fs := newFullTestSite(c)
	c.Assert(fs.RemoveAll("/site/2012"), qt.IsNil)

	err := s.renderYearArchives()
	c.Assert(err, qt.ErrorIs, ErrMissingDir)
}

func TestHomeSelectionPoolBoundary(t *testing.T) {
	c := qt.New(t)
	var all []*Entry
	for _, uri := range []string{"/l1", "/l2", "/l3", "/l4", "/f1", "/f2", "/f3", "/f4"} {
		all = append(all, &Entry{URI: uri, Year: 2013, Abstract: "a", Thumbnail: "t.jpg"})
	}
	// Not featurable: no thumbnail, or already among the latest by URI.
	all = append(all,
		&Entry{URI: "/plain", Year: 2013, Abstract: "a"},
		&Entry{URI: "/l1", Year: 2012, Abstract: "a", Thumbnail: "t.jpg"},
	)
	conf := testConf()
	conf.HomeLatest = 4
	conf.HomeFeatured = 4
	s := &Site{entries: all, conf: conf, rnd: newTestRand()}

	for range 20 {
		latest, featured, err := s.homeSelection()
		c.Assert(err, qt.IsNil)
		c.Assert(entryURIs(latest), qt.DeepEquals, []string{"/l1", "/l2", "/l3", "/l4"})
		uris := entryURIs(featured)
		slices.Sort(uris)
		c.Assert(uris, qt.DeepEquals, []string{"/f1", "/f2", "/f3", "/f4"})
	}

	s.entries = slices.Delete(slices.Clone(all), 7, 8)
	_, _, err := s.homeSelection()
	c.Assert(err, qt.ErrorIs, ErrPopulationTooSmall)
}
