package main

import "sort"

// Index holds the groupings the archive pages and the nearby links are built
// from. All entry lists are in catalog order.
type Index struct {
	// Years in the order they are first seen in the catalog.
	Years      []int
	ByYear     map[int][]*Entry
	ByLangYear map[string]map[int][]*Entry

	// Location names in byte order.
	Locations     []string
	LocationKinds map[string]LocationKind
	// Not deduplicated: an entry naming the same place under two fields is
	// listed twice.
	ByLocation map[string][]*Entry
}

func NewIndex(all []*Entry) *Index {
	ix := &Index{
		ByYear:        make(map[int][]*Entry),
		ByLangYear:    make(map[string]map[int][]*Entry),
		LocationKinds: make(map[string]LocationKind),
		ByLocation:    make(map[string][]*Entry),
	}

	for _, e := range all {
		ix.addDated(e)
		ix.addPlaces(e)
	}
	sort.Strings(ix.Locations)

	return ix
}

func (ix *Index) addDated(e *Entry) {
	if !e.Dated() {
		return
	}
	if _, ok := ix.ByYear[e.Year]; !ok {
		ix.Years = append(ix.Years, e.Year)
	}
	ix.ByYear[e.Year] = append(ix.ByYear[e.Year], e)

	if e.Language == "" {
		return
	}
	byYear, ok := ix.ByLangYear[e.Language]
	if !ok {
		byYear = make(map[int][]*Entry)
		ix.ByLangYear[e.Language] = byYear
	}
	byYear[e.Year] = append(byYear[e.Year], e)
}

// A name keeps the kind it was first seen with, even if a later entry uses it
// under another field.
func (ix *Index) addPlaces(e *Entry) {
	for _, kind := range indexingOrder {
		for _, name := range e.Places[kind] {
			if _, ok := ix.LocationKinds[name]; !ok {
				ix.Locations = append(ix.Locations, name)
				ix.LocationKinds[name] = kind
			}
			ix.ByLocation[name] = append(ix.ByLocation[name], e)
		}
	}
}

// langYear returns the entries of one language for one year, nil if none.
func (ix *Index) langYear(lang string, year int) []*Entry {
	return ix.ByLangYear[lang][year]
}
