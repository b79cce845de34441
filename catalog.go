package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/araddon/dateparse"
	json "github.com/goccy/go-json"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

var ErrDuplicateURI = errors.New("duplicate entry URI")

// entryRecord is one catalog record as written by hand. Place fields hold
// either a string or a list of strings; Year and Photos may be numbers or
// numeric strings.
type entryRecord struct {
	URI       string `yaml:"URI" json:"URI" validate:"required"`
	Title     string `yaml:"Title" json:"Title"`
	Language  string `yaml:"Language" json:"Language" validate:"omitempty,oneof=en fr"`
	Pubdate   string `yaml:"Pubdate" json:"Pubdate"`
	Year      any    `yaml:"Year" json:"Year"`
	Abstract  string `yaml:"Abstract" json:"Abstract"`
	Thumbnail string `yaml:"Thumbnail" json:"Thumbnail"`
	Photos    any    `yaml:"Photos" json:"Photos"`

	Continent any `yaml:"Continent" json:"Continent"`
	Country   any `yaml:"Country" json:"Country"`
	State     any `yaml:"State" json:"State"`
	Region    any `yaml:"Region" json:"Region"`
	City      any `yaml:"City" json:"City"`
	Location  any `yaml:"Location" json:"Location"`
}

func (r *entryRecord) place(k LocationKind) any {
	switch k {
	case Continent:
		return r.Continent
	case Country:
		return r.Country
	case Region:
		return r.Region
	case State:
		return r.State
	case City:
		return r.City
	case Location:
		return r.Location
	}
	return nil
}

// readCatalog loads the ordered entry list. JSON files are recognized by
// extension, everything else is read as YAML.
func readCatalog(fs afero.Fs, path string) ([]*Entry, error) {
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	records, err := decodeCatalog(raw, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decoding catalog %v: %w", path, err)
	}

	all := make([]*Entry, 0, len(records))
	seen := make(map[string]int, len(records))
	for i, rec := range records {
		e, err := entryFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("catalog %v, record %d: %w", path, i+1, err)
		}
		if first, ok := seen[e.URI]; ok {
			return nil, fmt.Errorf("catalog %v, records %d and %d: %w %q", path, first+1, i+1, ErrDuplicateURI, e.URI)
		}
		seen[e.URI] = i
		all = append(all, e)
	}
	return all, nil
}

// Unknown keys are errors: a typo in a field name should not silently drop
// the value.
func decodeCatalog(raw []byte, ext string) ([]entryRecord, error) {
	var records []entryRecord

	if strings.EqualFold(ext, ".json") {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&records); err != nil {
			return nil, err
		}
		return records, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&records); err != nil && err != io.EOF {
		return nil, err
	}
	return records, nil
}

func entryFromRecord(rec entryRecord) (*Entry, error) {
	if err := validateStruct(rec); err != nil {
		return nil, fmt.Errorf("invalid entry %q: %w", rec.URI, err)
	}

	e := &Entry{
		URI:       rec.URI,
		Title:     rec.Title,
		Language:  rec.Language,
		Abstract:  rec.Abstract,
		Thumbnail: rec.Thumbnail,
	}

	if rec.Pubdate != "" {
		t, err := dateparse.ParseStrict(rec.Pubdate)
		if err != nil {
			return nil, fmt.Errorf("entry %q: invalid Pubdate %q: %w", rec.URI, rec.Pubdate, err)
		}
		e.Pubdate = t
	}

	if rec.Year != nil {
		year, err := cast.ToIntE(rec.Year)
		if err != nil {
			return nil, fmt.Errorf("entry %q: invalid Year: %w", rec.URI, err)
		}
		e.Year = year
	}

	if rec.Photos != nil {
		photos, err := cast.ToIntE(rec.Photos)
		if err != nil {
			return nil, fmt.Errorf("entry %q: invalid Photos: %w", rec.URI, err)
		}
		e.Photos = photos
	}

	for k := Continent; k < numLocationKinds; k++ {
		names, err := placeNames(rec.place(k))
		if err != nil {
			return nil, fmt.Errorf("entry %q: invalid %s: %w", rec.URI, k, err)
		}
		e.Places[k] = names
	}

	return e, nil
}

// placeNames normalizes a scalar-or-list place value into a list. A bare
// string is one name, never split on whitespace.
func placeNames(v any) ([]string, error) {
	var raw []string
	switch v := v.(type) {
	case nil:
		return nil, nil
	case string:
		raw = []string{v}
	default:
		var err error
		if raw, err = cast.ToStringSliceE(v); err != nil {
			return nil, err
		}
	}

	names := make([]string, 0, len(raw))
	for _, n := range raw {
		n = norm.NFC.String(strings.TrimSpace(n))
		if n != "" {
			names = append(names, n)
		}
	}
	return names, nil
}
