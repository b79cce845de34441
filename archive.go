package main

import (
	"fmt"
	"html/template"
	"path"
	"strconv"
	"strings"
)

var archiveLanguages = []struct {
	code, title string
}{
	{"en", "Archives: in English"},
	{"fr", "Archives: en Français"},
}

// RenderArchives renders every index page: the full and per-language
// archives, one page per year, the geo index and one page per location, and
// the home page.
func (s *Site) RenderArchives() error {
	if err := s.renderFullArchive(); err != nil {
		return err
	}
	for _, lang := range archiveLanguages {
		if err := s.renderLanguageArchive(lang.code, lang.title); err != nil {
			return err
		}
	}
	if err := s.renderYearArchives(); err != nil {
		return err
	}
	if err := s.renderGeoIndex(); err != nil {
		return err
	}
	if err := s.renderLocationPages(); err != nil {
		return err
	}
	return s.renderHome()
}

func yearHeading(year int) string {
	return fmt.Sprintf(`<h2 id="y%d">%d</h2>`, year, year)
}

func (s *Site) renderFullArchive() error {
	var b strings.Builder
	for _, year := range s.index.Years {
		list, err := s.renderSelection(s.index.ByYear[year])
		if err != nil {
			return err
		}
		b.WriteString(yearHeading(year))
		b.WriteString(string(list))
	}

	return s.renderPage("all.html", "index_all.html", indexAllTemplateParam{
		pageMeta:      pageMeta{Title: "Archives", PageType: "Index"},
		YearlyEntries: template.HTML(b.String()),
		IncludeNav:    true,
	})
}

// Years without entries in lang are left out.
func (s *Site) renderLanguageArchive(lang, title string) error {
	var b strings.Builder
	for _, year := range s.index.Years {
		selection := s.index.langYear(lang, year)
		if len(selection) == 0 {
			continue
		}
		list, err := s.renderSelection(selection)
		if err != nil {
			return err
		}
		b.WriteString(yearHeading(year))
		b.WriteString(string(list))
	}

	intro, err := s.engine.renderHTML("intro_"+lang+".html", nil)
	if err != nil {
		return err
	}

	return s.renderPage("all_"+lang+".html", "index_all.html", indexAllTemplateParam{
		pageMeta:      pageMeta{Title: template.HTML(title), PageType: "Index", Language: lang},
		YearlyEntries: template.HTML(b.String()),
		Intro:         intro,
	})
}

// The year directories must already exist under htdocs.
func (s *Site) renderYearArchives() error {
	for _, year := range s.index.Years {
		list, err := s.renderSelection(s.index.ByYear[year])
		if err != nil {
			return err
		}
		y := strconv.Itoa(year)
		err = s.renderPage(path.Join(y, "index.html"), "index_generic.html", indexGenericTemplateParam{
			pageMeta: pageMeta{Title: template.HTML("Archives: " + y), PageType: "Index"},
			Entries:  list,
		})
		if err != nil {
			return err
		}
	}
	s.log.Info().Int("years", len(s.index.Years)).Msg("Year archives rendered")
	return nil
}

func (s *Site) renderGeoIndex() error {
	var b strings.Builder
	for _, group := range groupByKind(s.index) {
		block, err := s.engine.renderHTML("list_location.html", locationListTemplateParam{
			Kind:      group.Kind,
			Locations: group.Locations,
		})
		if err != nil {
			return err
		}
		b.WriteString(string(block))
	}

	return s.renderPage("geo/index.html", "index_generic.html", indexGenericTemplateParam{
		pageMeta: pageMeta{Title: "Archives: Around the world", PageType: "Index"},
		Intro:    template.HTML(b.String()),
	})
}

// Location pages list the bucket as indexed, duplicates included.
func (s *Site) renderLocationPages() error {
	for _, name := range s.index.Locations {
		list, err := s.renderSelection(s.index.ByLocation[name])
		if err != nil {
			return err
		}
		title := fmt.Sprintf("Entries in %s: %s", s.index.LocationKinds[name], name)
		err = s.renderPage("geo/"+locationSlug(name)+".html", "index_generic.html", indexGenericTemplateParam{
			pageMeta: pageMeta{Title: template.HTML(title), PageType: "Index"},
			Entries:  list,
		})
		if err != nil {
			return err
		}
	}
	s.log.Info().Int("locations", len(s.index.Locations)).Msg("Location pages rendered")
	return nil
}

// homeSelection returns the latest entries (the front of the catalog) and a
// random pick among the other entries having both an abstract and a
// thumbnail.
func (s *Site) homeSelection() (latest, featured []*Entry, err error) {
	latest = s.entries[:min(s.conf.HomeLatest, len(s.entries))]

	var featurable []*Entry
	for _, e := range s.entries {
		if e.Abstract != "" && e.Thumbnail != "" && !entries(latest).containsURI(e.URI) {
			featurable = append(featurable, e)
		}
	}

	featured, err = sample(s.rnd, featurable, s.conf.HomeFeatured)
	if err != nil {
		return nil, nil, fmt.Errorf("selecting featured entries: %w", err)
	}
	return latest, featured, nil
}

func (s *Site) renderHome() error {
	latest, featured, err := s.homeSelection()
	if err != nil {
		return err
	}
	latestHTML, err := s.renderSelection(latest)
	if err != nil {
		return err
	}
	featuredHTML, err := s.renderSelection(featured)
	if err != nil {
		return err
	}

	return s.renderPage("index.html", "index_main.html", indexMainTemplateParam{
		pageMeta: pageMeta{
			Title:       template.HTML(s.conf.HomeTitle),
			PageType:    "Home",
			Description: s.conf.HomeDescription,
		},
		Latest:   latestHTML,
		Featured: featuredHTML,
	})
}

func (s *Site) renderPage(dest, templateName string, data any) error {
	out, err := s.engine.render(templateName, data)
	if err != nil {
		return err
	}
	return s.pub.Publish(dest, out)
}
