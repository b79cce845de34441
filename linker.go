package main

import (
	"errors"
	"fmt"
	"html/template"
	"math/rand/v2"
	"slices"
)

var ErrPopulationTooSmall = errors.New("not enough entries to sample from")

// Tiers searched for nearby entries, most specific first. Going beyond the
// country is too broad to be interesting, so continents never contribute.
var nearbyTiers = []LocationKind{City, State, Region, Country}

// neighbours returns the catalog-adjacent entries of all[i] for prev/next
// navigation. Undated neighbours don't count, and undated entries get none.
func neighbours(all []*Entry, i int) (prev, next *Entry) {
	if !all[i].Dated() {
		return nil, nil
	}
	if i > 0 && all[i-1].Dated() {
		prev = all[i-1]
	}
	if i < len(all)-1 && all[i+1].Dated() {
		next = all[i+1]
	}
	return prev, next
}

// nearby collects up to max entries sharing a place with e. Tiers are
// consulted in order while fewer than max candidates have been found; if the
// last tier overshoots, a random max-sized subset is returned.
func nearby(e *Entry, ix *Index, max int, rnd *rand.Rand) []*Entry {
	var found []*Entry
	for _, kind := range nearbyTiers {
		if len(found) >= max {
			break
		}
		for _, name := range e.Places[kind] {
			found = append(found, ix.ByLocation[name]...)
		}
		found = dedupeIdentity(found, e)
	}

	// Identity dedup misses distinct records sharing a URI.
	found = entries(found).dedupeByURI(e.URI)

	if len(found) > max {
		// Cannot fail: the population is larger than the sample.
		found, _ = sample(rnd, found, max)
	}
	return found
}

func dedupeIdentity(es []*Entry, self *Entry) []*Entry {
	seen := make(map[*Entry]bool, len(es))
	out := es[:0]
	for _, e := range es {
		if e == self || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// sample picks k distinct elements of population uniformly at random. Asking
// for more than the population holds is an error, not a shorter result.
func sample[T any](rnd *rand.Rand, population []T, k int) ([]T, error) {
	if k < 0 || k > len(population) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrPopulationTooSmall, k, len(population))
	}
	pool := slices.Clone(population)
	for i := 0; i < k; i++ {
		j := i + rnd.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k], nil
}

type entryLinks struct {
	Prev, Next *Entry
	Nearby     []*Entry
}

func (s *Site) linksFor(i int) entryLinks {
	prev, next := neighbours(s.entries, i)
	return entryLinks{
		Prev:   prev,
		Next:   next,
		Nearby: nearby(s.entries[i], s.index, s.conf.MaxNearby, s.rnd),
	}
}

// Empty for undated entries and when there is neither a previous nor a next
// entry.
func (s *Site) renderPrevNext(e *Entry, l entryLinks) (template.HTML, error) {
	if !e.Dated() || (l.Prev == nil && l.Next == nil) {
		return "", nil
	}

	p := prevNextTemplateParam{Language: e.Language}
	var err error
	if l.Prev != nil {
		if p.Previous, err = s.renderSelection([]*Entry{l.Prev}); err != nil {
			return "", err
		}
	}
	if l.Next != nil {
		if p.Next, err = s.renderSelection([]*Entry{l.Next}); err != nil {
			return "", err
		}
	}
	return s.engine.renderHTML("prevnext.html", p)
}

func (s *Site) renderNearby(e *Entry, l entryLinks) (template.HTML, error) {
	if len(l.Nearby) == 0 {
		return "", nil
	}
	list, err := s.renderSelection(l.Nearby)
	if err != nil {
		return "", err
	}
	return s.engine.renderHTML("nearby.html", nearbyTemplateParam{Nearby: list, Language: e.Language})
}

// renderSelection renders a list of entries with the shared list item
// template.
func (s *Site) renderSelection(es []*Entry) (template.HTML, error) {
	return s.engine.renderHTML("list_entry.html", selectionTemplateParam{Selection: es})
}
