// Package mention implements @mention detection and autocomplete support
// for comment text. It is pure text scanning: no storage or rendering
// dependencies, so the token grammar is unit-testable in isolation.
package mention

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
)

// Span is one detected mention. Start is the byte offset of the '@',
// End the byte offset just past the candidate name. Name excludes the '@'.
type Span struct {
	Start int
	End   int
	Name  string
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// Extract scans text for mention tokens. A token begins at '@' and captures
// a "firstname lastname"-shaped name: a run of word characters, optionally
// followed by one single space and a second run. A double space, newline or
// end of string terminates the token; a bare '@' yields no span.
func Extract(text string) []Span {
	var spans []Span

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r != '@' {
			i += size
			continue
		}

		at := i
		j := i + size
		wordStart := j
		for j < len(text) {
			r, size := utf8.DecodeRuneInString(text[j:])
			if !isWordChar(r) {
				break
			}
			j += size
		}
		if j == wordStart {
			// '@' with no name after it
			i = j
			continue
		}

		end := j
		// one single interior space may join a second word
		if j < len(text) && text[j] == ' ' && j+1 < len(text) {
			r, _ := utf8.DecodeRuneInString(text[j+1:])
			if isWordChar(r) {
				k := j + 1
				for k < len(text) {
					r, size := utf8.DecodeRuneInString(text[k:])
					if !isWordChar(r) {
						break
					}
					k += size
				}
				end = k
			}
		}

		spans = append(spans, Span{
			Start: at,
			End:   end,
			Name:  text[wordStart:end],
		})
		i = end
	}

	return spans
}

// ActiveMention reports whether the caret sits inside an open (unterminated)
// mention and, if so, the search prefix typed after the '@'. A space or
// newline between the '@' and the caret closes the mention.
func ActiveMention(text string, caret int) (prefix string, start int, ok bool) {
	if caret > len(text) {
		caret = len(text)
	}

	before := text[:caret]
	at := strings.LastIndex(before, "@")
	if at < 0 {
		return "", 0, false
	}

	prefix = before[at+1:]
	if strings.ContainsAny(prefix, " \n") {
		return "", 0, false
	}
	return prefix, at, true
}

// Insert replaces the open mention span [start, caret) with "@FullName "
// and returns the new text plus the caret position just after the
// inserted text.
func Insert(text string, start, caret int, fullName string) (string, int) {
	if caret > len(text) {
		caret = len(text)
	}
	if start > caret {
		start = caret
	}

	inserted := "@" + fullName + " "
	newText := text[:start] + inserted + text[caret:]
	return newText, start + len(inserted)
}

// MatchCandidates filters board members by case-insensitive substring match
// against full name or email. Member list order is preserved; there is no
// relevance ranking.
func MatchCandidates(prefix string, members []domain.BoardMember) []domain.BoardMember {
	needle := strings.ToLower(prefix)

	var matches []domain.BoardMember
	for _, m := range members {
		if strings.Contains(strings.ToLower(m.FullName), needle) ||
			strings.Contains(strings.ToLower(m.Email), needle) {
			matches = append(matches, m)
		}
	}
	return matches
}

// Resolve annotates extracted spans with board member identities. A span
// whose name exactly matches a member's full name (case-insensitive)
// resolves to that member; others stay unresolved.
func Resolve(text string, members []domain.BoardMember) []domain.MentionSpan {
	spans := Extract(text)
	if len(spans) == 0 {
		return nil
	}

	resolved := make([]domain.MentionSpan, 0, len(spans))
	for _, s := range spans {
		span := domain.MentionSpan{Start: s.Start, End: s.End, Name: s.Name}
		for _, m := range members {
			if strings.EqualFold(m.FullName, s.Name) {
				span.UserID = m.UserID
				span.Resolved = true
				break
			}
		}
		resolved = append(resolved, span)
	}
	return resolved
}
