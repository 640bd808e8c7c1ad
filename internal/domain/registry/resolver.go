package registry

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxFuzzyRank bounds the edit distance accepted by the last-resort fuzzy
// stage. Kept tight so a typo can still resolve but an unrelated label
// cannot fabricate an account.
const maxFuzzyRank = 2

// categorySynonyms is a fixed bilingual table consulted when a category
// label fails direct resolution. Order matters: the first pair whose side
// matches is the one retried.
var categorySynonyms = [][2]string{
	{"food", "comida"},
	{"groceries", "supermercado"},
	{"restaurant", "restaurante"},
	{"transport", "transporte"},
	{"transportation", "transporte"},
	{"fuel", "combustible"},
	{"health", "salud"},
	{"pharmacy", "farmacia"},
	{"utilities", "servicios"},
	{"entertainment", "ocio"},
	{"shopping", "compras"},
	{"rent", "alquiler"},
	{"salary", "salario"},
	{"other", "otros"},
}

type entry struct {
	key string // lowercased lookup key
	id  string
}

// Resolver turns free-text labels into registry identifiers. Lookup is
// exact first, then substring containment in either direction (first table
// entry wins), then a bounded fuzzy rank for accounts. The tables are plain
// slices precisely because map iteration order would make the substring
// stage non-deterministic.
type Resolver struct {
	accounts      []entry
	accountByKey  map[string]string
	categories    []entry
	categoryByKey map[string]string
}

// NewResolver snapshots the registries into ordered lookup tables. Name,
// alias, and institution all key an account; later duplicates of a key are
// ignored so the first registered owner keeps it.
func NewResolver(accounts []Account, categories []Category) *Resolver {
	r := &Resolver{
		accountByKey:  make(map[string]string),
		categoryByKey: make(map[string]string),
	}
	for _, a := range accounts {
		for _, key := range []string{a.Name, a.Alias, a.Institution} {
			r.addAccountKey(key, a.ID)
		}
	}
	for _, c := range categories {
		key := normalize(c.Name)
		if key == "" {
			continue
		}
		if _, dup := r.categoryByKey[key]; dup {
			continue
		}
		r.categoryByKey[key] = c.ID
		r.categories = append(r.categories, entry{key: key, id: c.ID})
	}
	return r
}

func (r *Resolver) addAccountKey(key, id string) {
	key = normalize(key)
	if key == "" {
		return
	}
	if _, dup := r.accountByKey[key]; dup {
		return
	}
	r.accountByKey[key] = id
	r.accounts = append(r.accounts, entry{key: key, id: id})
}

// ResolveAccount resolves a free-text account label to an account ID.
func (r *Resolver) ResolveAccount(label string) (string, bool) {
	norm := normalize(label)
	if norm == "" {
		return "", false
	}
	if id, ok := r.accountByKey[norm]; ok {
		return id, true
	}
	if id, ok := substringLookup(r.accounts, norm); ok {
		return id, true
	}
	return fuzzyLookup(r.accounts, norm)
}

// ResolveCategory resolves a category label, consulting the bilingual
// synonym table before giving up.
func (r *Resolver) ResolveCategory(label string) (string, bool) {
	norm := normalize(label)
	if norm == "" {
		return "", false
	}
	if id, ok := r.lookupCategory(norm); ok {
		return id, true
	}
	for _, pair := range categorySynonyms {
		var alternate string
		switch {
		case strings.Contains(norm, pair[0]):
			alternate = pair[1]
		case strings.Contains(norm, pair[1]):
			alternate = pair[0]
		default:
			continue
		}
		if id, ok := r.lookupCategory(alternate); ok {
			return id, true
		}
	}
	return "", false
}

func (r *Resolver) lookupCategory(norm string) (string, bool) {
	if id, ok := r.categoryByKey[norm]; ok {
		return id, true
	}
	return substringLookup(r.categories, norm)
}

// substringLookup returns the first table entry containing the label or
// contained by it.
func substringLookup(entries []entry, norm string) (string, bool) {
	for _, e := range entries {
		if strings.Contains(e.key, norm) || strings.Contains(norm, e.key) {
			return e.id, true
		}
	}
	return "", false
}

// fuzzyLookup is the last resort for account labels: the best
// rank-normalized fuzzy match within the allowed distance wins.
func fuzzyLookup(entries []entry, norm string) (string, bool) {
	bestID := ""
	bestRank := maxFuzzyRank + 1
	for _, e := range entries {
		rank := fuzzy.RankMatchNormalizedFold(norm, e.key)
		if rank >= 0 && rank < bestRank {
			bestRank = rank
			bestID = e.id
		}
	}
	return bestID, bestID != ""
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
