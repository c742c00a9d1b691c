package analysis

import (
	"strings"

	"dartagent/pkg/datastore"
)

// Resolution is the outcome of matching a requested metric name against a
// table's account-name column.
type Resolution struct {
	Resolved  string // account name actually present in the table
	Requested string // name the caller asked for
}

// Substituted reports whether a synonym or fuzzy match replaced the
// requested name.
func (r Resolution) Substituted() bool {
	return r.Resolved != r.Requested
}

// ResolveAccountName finds the table account name that best matches target.
//
// The algorithm is greedy and order-sensitive on purpose: three passes,
// first hit in table order wins, no similarity ranking. Changing this to a
// scored match would change observable behavior and is out of bounds here.
//
//  1. target appears as a substring of some account_nm → no substitution.
//  2. target belongs to a synonym group → the other members are scanned as
//     substrings against the column.
//  3. any distinct account name that contains target or is contained by it.
//
// Returns ok=false when all passes miss.
func ResolveAccountName(table *datastore.Table, target string) (Resolution, bool) {
	if target == "" {
		return Resolution{}, false
	}

	// Pass 1: direct substring hit.
	for _, row := range table.Rows {
		if strings.Contains(row.AccountName, target) {
			return Resolution{Resolved: target, Requested: target}, true
		}
	}

	// Pass 2: synonym-group siblings.
	if group := synonymGroup(target); group != nil {
		for _, sibling := range group {
			if sibling == target {
				continue
			}
			for _, row := range table.Rows {
				if strings.Contains(row.AccountName, sibling) {
					return Resolution{Resolved: sibling, Requested: target}, true
				}
			}
		}
	}

	// Pass 3: containment in either direction over distinct names.
	for _, name := range table.AccountNames() {
		if strings.Contains(name, target) || strings.Contains(target, name) {
			return Resolution{Resolved: name, Requested: target}, true
		}
	}

	return Resolution{}, false
}

// firstMatchingRow returns the first row whose account name contains
// resolved, mirroring the extractor's "first matching value" rule.
func firstMatchingRow(table *datastore.Table, resolved string) (datastore.Row, bool) {
	for _, row := range table.Rows {
		if strings.Contains(row.AccountName, resolved) {
			return row, true
		}
	}
	return datastore.Row{}, false
}
