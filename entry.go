package main

import (
	"fmt"
	"html/template"
	"time"
)

// LocationKind classifies a place name: the catalog field it was first seen in.
type LocationKind int

const (
	Continent LocationKind = iota
	Country
	Region
	State
	City
	Location
	numLocationKinds
)

// The order in which place fields are visited while indexing. It decides which
// kind a name gets when it shows up under more than one field.
var indexingOrder = []LocationKind{Continent, Country, State, Region, City, Location}

// The order of the blocks on the geo index page.
var geoIndexOrder = []LocationKind{Continent, Country, Region, State, City, Location}

var locationKindNames = [numLocationKinds]string{"Continent", "Country", "Region", "State", "City", "Location"}

func (k LocationKind) String() string {
	if k < 0 || k >= numLocationKinds {
		return fmt.Sprintf("LocationKind(%d)", int(k))
	}
	return locationKindNames[k]
}

type Entry struct {
	URI       string
	Title     string
	Language  string
	Pubdate   time.Time
	Year      int
	Abstract  string
	Thumbnail string
	Photos    int

	// One list of place names per LocationKind, in catalog order.
	Places [numLocationKinds][]string

	// Rendered HTML, set by the renderer.
	Body string
}

// Dated reports whether the entry has a year. Undated entries are static
// pages: they get no prev/next navigation and are left out of the archives.
func (e *Entry) Dated() bool { return e.Year != 0 }

// Called from templates
func (e *Entry) PubdateHuman() string {
	if e.Pubdate.IsZero() {
		return ""
	}
	return e.Pubdate.Format("2006-01-02")
}

// Called from templates
func (e *Entry) TitleHTML() template.HTML {
	return template.HTML(e.Title)
}

// Called from templates
func (e *Entry) AbstractHTML() template.HTML {
	return template.HTML(e.Abstract)
}

type entries []*Entry

func (es entries) containsURI(uri string) bool {
	for _, e := range es {
		if e.URI == uri {
			return true
		}
	}
	return false
}

// dedupeByURI keeps the first entry for every URI and drops any entry whose
// URI is exclude.
func (es entries) dedupeByURI(exclude string) entries {
	seen := make(map[string]bool, len(es))
	out := make(entries, 0, len(es))
	for _, e := range es {
		if e.URI == exclude || seen[e.URI] {
			continue
		}
		seen[e.URI] = true
		out = append(out, e)
	}
	return out
}
