package listings

import (
	"regexp"
	"strings"

	"github.com/HORNET-Storage/nostreats/lib/types"
)

// SearchQuery is a parsed search string: free text plus the status: and
// claimed: filters. Any other word:token stays part of the text.
type SearchQuery struct {
	Text       string
	Extensions map[string]string
}

var (
	extensionRegex = regexp.MustCompile(`(?i)(^|\s)(status|claimed):(\S+)`)
	spaceRegex     = regexp.MustCompile(`\s+`)
)

// ParseSearchQuery splits search into text and extensions.
// "taco status:closed" -> {Text: "taco", Extensions: {"status": "closed"}}
func ParseSearchQuery(search string) SearchQuery {
	query := SearchQuery{
		Extensions: make(map[string]string),
	}

	remaining := search
	for _, match := range extensionRegex.FindAllStringSubmatch(search, -1) {
		query.Extensions[strings.ToLower(match[2])] = strings.ToLower(match[3])
		remaining = strings.Replace(remaining, match[0], " ", 1)
	}

	query.Text = spaceRegex.ReplaceAllString(strings.TrimSpace(remaining), " ")
	return query
}

// GetExtension returns the value of an extension
func (q SearchQuery) GetExtension(key string) (string, bool) {
	value, ok := q.Extensions[strings.ToLower(key)]
	return value, ok
}

// Status returns the status filter, if a valid one was given
func (q SearchQuery) Status() (types.ListingStatus, bool) {
	value, ok := q.GetExtension("status")
	if !ok {
		return "", false
	}
	status := types.ListingStatus(value)
	return status, status.Valid()
}

// NeedsAll reports whether the query can match listings that are not open
func (q SearchQuery) NeedsAll() bool {
	status, ok := q.Status()
	return ok && status != types.StatusOpen
}

// Matches reports whether l satisfies the text and the filters. A status
// filter naming no known status is ignored.
func (q SearchQuery) Matches(l types.Listing) bool {
	if status, ok := q.Status(); ok && l.Status != status {
		return false
	}
	if claimed, ok := q.GetExtension("claimed"); ok && (claimed == "true") != l.Claimed {
		return false
	}

	text := strings.ToLower(q.Text)
	return strings.Contains(strings.ToLower(l.Name), text) ||
		strings.Contains(strings.ToLower(l.Address), text) ||
		strings.Contains(strings.ToLower(l.About), text)
}

// Search matches query case-insensitively against name, address and about,
// applying any status: or claimed: filters it carries.
func Search(ls []types.Listing, query string) []types.Listing {
	q := ParseSearchQuery(query)
	return filter(ls, q.Matches)
}
