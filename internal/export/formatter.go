// Package export renders ordered quote lists into platform-specific output.
//
// Rendering is a pure computation: (format, quotes, optional title/author)
// in, (MIME type, content) out. Output always ends with exactly one trailing
// newline. Unknown formats fall back to plain text.
package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/quotedeck/quotedeck/internal/models"
)

const (
	mimeJSON   = "application/json"
	mimeText   = "text/plain; charset=utf-8"
	mimeVTT    = "text/vtt; charset=utf-8"
	openQuote  = "“"
	closeQuote = "”"

	// Twitter/X keeps each entry under the platform limit with a little
	// headroom for client-added context.
	tweetMaxRunes      = 275
	tweetTruncRunes    = 272
	linkedInMaxRunes   = 400
	linkedInTruncRunes = 397
	tagMaxRunes        = 20
)

// now is swappable for deterministic generated_at values in tests.
var now = time.Now

// Render produces the formatted output for the given format and quotes.
// Title and author are optional; nil means absent.
func Render(format models.ExportFormat, quotes []*models.Quote, title, author *string) (mime string, content string, err error) {
	switch format {
	case models.FormatJSON:
		return renderJSON(quotes, title, author)
	case models.FormatTwitter:
		return mimeText, renderTwitter(quotes), nil
	case models.FormatLinkedIn:
		return mimeText, renderLinkedIn(quotes, author), nil
	case models.FormatInstagram:
		return mimeText, renderInstagram(quotes), nil
	case models.FormatSRT:
		return mimeText, renderSRT(quotes), nil
	case models.FormatVTT:
		return mimeVTT, renderVTT(quotes), nil
	default:
		return mimeText, renderPlainText(quotes, title, author), nil
	}
}

// FileExtension returns the download extension for a format.
func FileExtension(format models.ExportFormat) string {
	switch format {
	case models.FormatJSON:
		return "json"
	case models.FormatSRT:
		return "srt"
	case models.FormatVTT:
		return "vtt"
	default:
		return "txt"
	}
}

type jsonPayload struct {
	Title       *string         `json:"title"`
	Author      *string         `json:"author"`
	Quotes      []*models.Quote `json:"quotes"`
	GeneratedAt string          `json:"generated_at"`
}

func renderJSON(quotes []*models.Quote, title, author *string) (string, string, error) {
	if quotes == nil {
		quotes = []*models.Quote{}
	}
	payload := jsonPayload{
		Title:       title,
		Author:      author,
		Quotes:      quotes,
		GeneratedAt: now().UTC().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("marshal export payload: %w", err)
	}
	return mimeJSON, finish(string(data)), nil
}

func renderPlainText(quotes []*models.Quote, title, author *string) string {
	header := "Quotes Export"
	if title != nil && *title != "" {
		header = *title
	}
	lines := []string{header, underline(header)}
	if author != nil && *author != "" {
		lines = append(lines, "Author: "+*author, "")
	}
	for i, q := range quotes {
		lines = append(lines, fmt.Sprintf("%d. %s%s%s", i+1, openQuote, strings.TrimSpace(q.Text), closeQuote))
	}
	if len(quotes) == 0 {
		lines = append(lines, "(No quotes selected)")
	}
	return finish(strings.Join(lines, "\n"))
}

func renderTwitter(quotes []*models.Quote) string {
	header := "X/Twitter Export"
	lines := []string{header, underline(header)}
	for _, q := range quotes {
		tweet := openQuote + strings.TrimSpace(q.Text) + closeQuote
		if tags := hashTags(q.Tags, 2); tags != "" {
			tweet += " " + tags
		}
		tweet = strings.TrimSpace(tweet)
		if runeLen(tweet) > tweetMaxRunes {
			tweet = truncateRunes(tweet, tweetTruncRunes) + "..."
		}
		lines = append(lines, tweet, "")
	}
	return finish(strings.Join(lines, "\n"))
}

func renderLinkedIn(quotes []*models.Quote, author *string) string {
	header := "LinkedIn Export"
	lines := []string{header, underline(header)}
	if author != nil && *author != "" {
		lines = append(lines, "By "+*author, "")
	}
	lines = append(lines, "Highlights:")
	for _, q := range quotes {
		snippet := strings.TrimSpace(q.Text)
		if runeLen(snippet) > linkedInMaxRunes {
			snippet = truncateRunes(snippet, linkedInTruncRunes) + "..."
		}
		lines = append(lines, "• "+openQuote+snippet+closeQuote)
	}
	lines = append(lines, "", "Let me know your thoughts in the comments! #Leadership #Insights")
	return finish(strings.Join(lines, "\n"))
}

func renderInstagram(quotes []*models.Quote) string {
	header := "Instagram Export"
	lines := []string{header, underline(header)}
	for _, q := range quotes {
		caption := openQuote + strings.TrimSpace(q.Text) + closeQuote
		if tags := hashTags(q.Tags, 4); tags != "" {
			caption += "\n" + tags
		}
		lines = append(lines, caption, "")
	}
	if len(quotes) == 0 {
		lines = append(lines, "(No quotes)")
	}
	return finish(strings.Join(lines, "\n"))
}

func renderSRT(quotes []*models.Quote) string {
	var lines []string
	for i, q := range quotes {
		lines = append(lines,
			fmt.Sprintf("%d", i+1),
			formatTimecode(secondsOrZero(q.Start), ",")+" --> "+formatTimecode(secondsOrZero(q.End), ","),
			strings.TrimSpace(q.Text),
			"")
	}
	return finish(strings.Join(lines, "\n"))
}

func renderVTT(quotes []*models.Quote) string {
	lines := []string{"WEBVTT", ""}
	for _, q := range quotes {
		lines = append(lines,
			formatTimecode(secondsOrZero(q.Start), ".")+" --> "+formatTimecode(secondsOrZero(q.End), "."),
			strings.TrimSpace(q.Text),
			"")
	}
	return finish(strings.Join(lines, "\n"))
}

// underline returns a dash rule matching the header's visible length.
func underline(header string) string {
	return strings.Repeat("-", runeLen(header))
}

// hashTags renders up to max tags as "#tag" words, each tag capped at 20 runes.
func hashTags(tags []string, max int) string {
	if len(tags) == 0 {
		return ""
	}
	if len(tags) > max {
		tags = tags[:max]
	}
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, "#"+truncateRunes(t, tagMaxRunes))
	}
	return strings.Join(parts, " ")
}

// finish trims trailing whitespace and appends exactly one newline.
func finish(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace) + "\n"
}

func runeLen(s string) int {
	return len([]rune(s))
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
