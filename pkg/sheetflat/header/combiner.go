package header

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Policy selects how a column's fragments are joined.
type Policy string

const (
	// PolicyJoin drops empty fragments and joins the rest with one space.
	PolicyJoin Policy = "join"
	// PolicyDedup is PolicyJoin that also drops a fragment repeating an
	// earlier kept fragment of the same column.
	PolicyDedup Policy = "dedup"
)

// ParsePolicy parses a policy name.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyJoin, PolicyDedup:
		return p, nil
	case "":
		return PolicyJoin, nil
	default:
		return "", fmt.Errorf("invalid header policy: %s (must be join or dedup)", s)
	}
}

// Combine joins one column's fragments into its final label.
// Fragments are trimmed; blank ones are skipped.
func Combine(fragments []string, policy Policy) string {
	parts := make([]string, 0, len(fragments))
	var seen map[string]struct{}
	if policy == PolicyDedup {
		seen = make(map[string]struct{}, len(fragments))
	}

	for _, frag := range fragments {
		frag = strings.TrimSpace(frag)
		if frag == "" {
			continue
		}
		if seen != nil {
			key := norm.NFC.String(frag)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		parts = append(parts, frag)
	}
	return strings.Join(parts, " ")
}

// CombineAll returns the flat header, one label per column in column order.
func CombineAll(frags Fragments, policy Policy) []string {
	header := make([]string, len(frags))
	for i, col := range frags {
		header[i] = Combine(col, policy)
	}
	return header
}
