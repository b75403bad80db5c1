package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/umitdogu/proxysql-monitor/internal/model"
)

// HostResolver supplies a short hostname for an address, or "" when none is
// known. Satisfied by netutil.CachingResolver.
type HostResolver interface {
	ShortHostname(addr string) string
}

// Engine filters rows by fuzzy pattern: a row matches when the pattern's
// characters appear in order anywhere in the row's searchable text. IP-shaped
// cells additionally contribute their resolved hostname, so an operator can
// filter connections by machine name even though ProxySQL only reports
// addresses.
type Engine struct {
	resolver HostResolver
}

// NewEngine creates a filter engine. resolver may be nil to disable
// hostname augmentation.
func NewEngine(resolver HostResolver) *Engine {
	return &Engine{resolver: resolver}
}

// Matches reports whether row matches pattern. The empty pattern matches
// everything; a row with no searchable text matches nothing else.
func (e *Engine) Matches(pattern string, row model.Row) bool {
	if pattern == "" {
		return true
	}
	text := e.rowText(row)
	if text == "" {
		return false
	}
	return len(fuzzy.Find(strings.ToLower(pattern), []string{text})) > 0
}

// Filter returns the rows matching pattern, preserving input order.
func (e *Engine) Filter(pattern string, rows []model.Row) []model.Row {
	if pattern == "" {
		return rows
	}
	out := make([]model.Row, 0, len(rows))
	for _, row := range rows {
		if e.Matches(pattern, row) {
			out = append(out, row)
		}
	}
	return out
}

// rowText builds the searchable text for a row: all non-null cells joined
// with spaces, lowercased, with resolved hostnames appended for IP cells.
func (e *Engine) rowText(row model.Row) string {
	var b strings.Builder
	for i := range row {
		cell := row.Field(i)
		if cell == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(cell)
		if e.resolver != nil && looksLikeIP(cell) {
			if name := e.resolver.ShortHostname(cell); name != "" {
				b.WriteByte(' ')
				b.WriteString(name)
			}
		}
	}
	return strings.ToLower(b.String())
}

// looksLikeIP is a cheap shape test: digits plus dots, optionally a :port.
// It spares the resolver from being asked about usernames and queries.
func looksLikeIP(cell string) bool {
	if !strings.Contains(cell, ".") {
		return false
	}
	for _, c := range cell {
		switch {
		case c >= '0' && c <= '9':
		case c == '.' || c == ':':
		default:
			return false
		}
	}
	return true
}
