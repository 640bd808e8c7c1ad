// Package registry resolves free-text account and category labels against
// the caller-supplied registry snapshots. Snapshots are read-only for the
// duration of a resolution pass; the resolver keeps its lookup tables in
// insertion order so fuzzy matches stay deterministic between runs.
package registry

// Account is a registry snapshot row. Alias and Institution are optional
// alternate lookup keys.
type Account struct {
	ID          string
	Name        string
	Alias       string
	Institution string
}

// Category is a registry snapshot row.
type Category struct {
	ID   string
	Name string
}
