package main

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"
)

const atomNS = "http://www.w3.org/2005/Atom"

// The Atom document as atomgenerator writes it, re-read so the feed can
// carry what the generator has no field for: a self link, a subtitle,
// published dates and URL ids.

// atomText keeps its inner XML verbatim, so already escaped content is
// written back untouched.
type atomText struct {
	Type string `xml:"type,attr,omitempty"`
	Body string `xml:",innerxml"`
}

func plainAtomText(s string) (*atomText, error) {
	var b bytes.Buffer
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return nil, err
	}
	return &atomText{Body: b.String()}, nil
}

type atomLink struct {
	Rel  string `xml:"rel,attr,omitempty"`
	Type string `xml:"type,attr,omitempty"`
	Href string `xml:"href,attr"`
}

type atomPerson struct {
	Name  string `xml:"name"`
	URI   string `xml:"uri,omitempty"`
	Email string `xml:"email,omitempty"`
}

type atomCategory struct {
	Term   string `xml:"term,attr"`
	Scheme string `xml:"scheme,attr,omitempty"`
	Label  string `xml:"label,attr,omitempty"`
}

// atomOther holds any element the structs below don't name.
type atomOther struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Inner   string     `xml:",innerxml"`
}

type atomEntryXML struct {
	Title      *atomText      `xml:"title"`
	Links      []atomLink     `xml:"link"`
	ID         string         `xml:"id"`
	Published  string         `xml:"published,omitempty"`
	Updated    string         `xml:"updated"`
	Authors    []atomPerson   `xml:"author"`
	Categories []atomCategory `xml:"category"`
	Summary    *atomText      `xml:"summary"`
	Content    *atomText      `xml:"content"`
	Other      []atomOther    `xml:",any"`
}

type atomFeedXML struct {
	XMLName  xml.Name       `xml:"feed"`
	Title    *atomText      `xml:"title"`
	Subtitle *atomText      `xml:"subtitle"`
	Links    []atomLink     `xml:"link"`
	ID       string         `xml:"id"`
	Updated  string         `xml:"updated"`
	Authors  []atomPerson   `xml:"author"`
	Other    []atomOther    `xml:",any"`
	Entries  []atomEntryXML `xml:"entry"`
}

// completeFeed adds to the generated feed the self link, the subtitle and,
// for every item of selection, its published date and its URL as id.
func (s *Site) completeFeed(generated []byte, selection []*Entry) ([]byte, error) {
	var feed atomFeedXML
	if err := xml.Unmarshal(generated, &feed); err != nil {
		return nil, fmt.Errorf("reading generated feed: %w", err)
	}
	if len(feed.Entries) != len(selection) {
		return nil, fmt.Errorf("generated feed has %d entries, want %d", len(feed.Entries), len(selection))
	}

	// Children are written without a namespace and inherit the feed's.
	feed.XMLName = xml.Name{Space: atomNS, Local: "feed"}
	for i := range feed.Other {
		feed.Other[i].XMLName.Space = ""
	}

	feed.ID = s.conf.SiteRoot + "/"
	feed.Links = append(feed.Links, atomLink{Rel: "self", Type: "application/atom+xml", Href: s.conf.SiteRoot + "/atom.xml"})
	subtitle, err := plainAtomText(s.feedSubtitle())
	if err != nil {
		return nil, err
	}
	feed.Subtitle = subtitle

	for i, e := range selection {
		item := &feed.Entries[i]
		item.ID = s.entryLink(e)
		item.Published = e.Pubdate.Format(time.RFC3339)
		// Abstracts are HTML.
		if item.Summary != nil {
			item.Summary.Type = "html"
		}
		for j := range item.Other {
			item.Other[j].XMLName.Space = ""
		}
	}

	out, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("writing feed: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

func (s *Site) feedSubtitle() string {
	if s.conf.FeedSubtitle != "" {
		return s.conf.FeedSubtitle
	}
	return s.conf.Author
}
