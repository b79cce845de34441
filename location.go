package main

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// locationSlug turns a place name into the file name used under geo/:
// lowercase, spaces to underscores, commas dropped.
func locationSlug(name string) string {
	slug := cases.Lower(language.Und).String(name)
	slug = strings.ReplaceAll(slug, " ", "_")
	return strings.ReplaceAll(slug, ",", "")
}

type locationLink struct {
	URI   string
	Name  string
	Count int
}

type locationsOfKind struct {
	Kind      LocationKind
	Locations []locationLink
}

// groupByKind lists every indexed location under its kind, following the
// geo index block order. Within a kind the names stay sorted.
func groupByKind(ix *Index) []locationsOfKind {
	byKind := make(map[LocationKind][]locationLink, len(geoIndexOrder))
	for _, name := range ix.Locations {
		kind := ix.LocationKinds[name]
		byKind[kind] = append(byKind[kind], locationLink{
			URI:   "/geo/" + locationSlug(name),
			Name:  name,
			Count: len(ix.ByLocation[name]),
		})
	}

	groups := make([]locationsOfKind, 0, len(geoIndexOrder))
	for _, kind := range geoIndexOrder {
		groups = append(groups, locationsOfKind{Kind: kind, Locations: byKind[kind]})
	}
	return groups
}
