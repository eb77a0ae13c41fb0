package sqlite

import (
	"context"
	"fmt"
	"strings"

	"painter/internal/store"
)

const searchLimit = 50

// Search matches query against key, title and body. A non-empty locale keeps
// language-neutral documents and drops other languages.
func (c *Client) Search(ctx context.Context, query, kind, locale string) ([]store.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query must not be empty")
	}

	ftsQuery := convertWebsearchToFTS5(query)
	if ftsQuery == "" {
		return nil, fmt.Errorf("query has no searchable terms")
	}

	sqlQuery := `
	SELECT d.kind, d.key, d.locale, d.title,
		   -bm25(documents_fts, 4.0, 10.0, 1.0) AS score,
		   snippet(documents_fts, 2, '**', '**', '...', 16) AS snippet
	FROM documents_fts
	JOIN documents d ON documents_fts.rowid = d.id
	WHERE documents_fts MATCH ?
	  AND (? = '' OR d.kind = ?)
	  AND (? = '' OR d.locale = ? OR d.locale = '')
	ORDER BY score DESC, d.kind ASC, d.key ASC, d.locale ASC
	LIMIT ?
	`

	rows, err := c.db.QueryContext(ctx, sqlQuery, ftsQuery, kind, kind, locale, locale, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("searching documents: %w", err)
	}
	defer rows.Close()

	results := []store.SearchResult{}
	for rows.Next() {
		var r store.SearchResult
		if err := rows.Scan(&r.Kind, &r.Key, &r.Locale, &r.Title, &r.Score, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search results: %w", err)
	}

	return results, nil
}

// convertWebsearchToFTS5 turns web-search syntax ("phrase", -term, OR) into an
// FTS5 expression. FTS5 NOT is binary, so a negation with nothing to its left
// is dropped.
func convertWebsearchToFTS5(query string) string {
	var parts []string
	var inQuote, negatePhrase bool
	var current strings.Builder

	lastIsOperator := func() bool {
		return len(parts) > 0 && isOperator(parts[len(parts)-1])
	}
	addOperator := func(op string) {
		if len(parts) == 0 || lastIsOperator() {
			return
		}
		parts = append(parts, op)
	}
	addTerm := func(term string, negate bool) {
		if negate {
			if len(parts) == 0 {
				return
			}
			if lastIsOperator() {
				parts = parts[:len(parts)-1]
			}
			parts = append(parts, "NOT", term)
			return
		}
		if len(parts) > 0 && !lastIsOperator() {
			parts = append(parts, "AND")
		}
		parts = append(parts, term)
	}

	flushToken := func() {
		token := current.String()
		current.Reset()
		if token == "" {
			return
		}

		upper := strings.ToUpper(token)
		if isOperator(upper) {
			addOperator(upper)
			return
		}

		if strings.HasPrefix(token, "-") && len(token) > 1 {
			addTerm(ftsTerm(token[1:]), true)
			return
		}
		addTerm(ftsTerm(token), false)
	}

	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '"':
			if inQuote {
				inQuote = false
				phrase := strings.TrimSpace(current.String())
				current.Reset()
				if phrase != "" {
					addTerm(`"`+phrase+`"`, negatePhrase)
				}
				negatePhrase = false
			} else {
				// -"phrase" excludes the phrase.
				if current.String() == "-" {
					current.Reset()
					negatePhrase = true
				} else {
					flushToken()
				}
				inQuote = true
			}
		case inQuote:
			current.WriteByte(ch)
		case ch == ' ' || ch == '\t':
			flushToken()
		default:
			current.WriteByte(ch)
		}
	}

	if inQuote {
		phrase := strings.TrimSpace(current.String())
		current.Reset()
		if phrase != "" {
			addTerm(`"`+phrase+`"`, negatePhrase)
		}
	}
	flushToken()

	for lastIsOperator() {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, " ")
}

func isOperator(word string) bool {
	return word == "AND" || word == "OR" || word == "NOT"
}

// ftsTerm quotes tokens FTS5 would not accept as barewords. A trailing * is
// kept as a prefix query.
func ftsTerm(token string) string {
	prefix := strings.HasSuffix(token, "*") && len(token) > 1
	word := token
	if prefix {
		word = strings.TrimSuffix(token, "*")
	}
	if isBareword(word) {
		return token
	}
	quoted := `"` + strings.ReplaceAll(word, `"`, `""`) + `"`
	if prefix {
		return quoted + "*"
	}
	return quoted
}

func isBareword(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r > 127:
		default:
			return false
		}
	}
	return true
}
