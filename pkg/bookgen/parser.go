// Package bookgen turns free-form LLM answers into a book outline.
package bookgen

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var ErrEmptyOutput = errors.New("model returned no usable content")

type Chapter struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Draft struct {
	Title    string    `json:"title"`
	Chapters []Chapter `json:"chapters"`
}

var (
	fencedJSON   = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	markdownHead = regexp.MustCompile(`^\s{0,3}(#{1,3})\s+(.+?)\s*#*\s*$`)
	chapterHead  = regexp.MustCompile(`(?i)^\s*(?:\*\*)?chapter\s+(\d+|[ivxlc]+)\s*[:.\-]?\s*(.*?)(?:\*\*)?\s*$`)
)

// Parser handles LLM answer to Draft conversion
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse prefers a JSON object anywhere in the answer and falls back to
// splitting the text on chapter headings. fallbackTitle names the book when
// the answer carries no title of its own.
func (p *Parser) Parse(raw, fallbackTitle string) (*Draft, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrEmptyOutput
	}

	if d := p.parseJSON(raw); d != nil {
		if d.Title == "" {
			d.Title = fallbackTitle
		}
		return d, nil
	}

	d := p.splitHeadings(raw)
	if d.Title == "" {
		d.Title = fallbackTitle
	}
	if len(d.Chapters) == 0 {
		return nil, ErrEmptyOutput
	}
	return d, nil
}

func (p *Parser) parseJSON(raw string) *Draft {
	candidates := make([]string, 0, 2)
	if m := fencedJSON.FindStringSubmatch(raw); m != nil {
		candidates = append(candidates, m[1])
	}
	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start >= 0 && end > start {
		candidates = append(candidates, raw[start:end+1])
	}

	for _, c := range candidates {
		var d Draft
		if err := json.Unmarshal([]byte(c), &d); err != nil {
			continue
		}
		d.Title = strings.TrimSpace(d.Title)
		chapters := d.Chapters[:0]
		for _, ch := range d.Chapters {
			ch.Title = strings.TrimSpace(ch.Title)
			ch.Content = strings.TrimSpace(ch.Content)
			if ch.Title == "" && ch.Content == "" {
				continue
			}
			chapters = append(chapters, ch)
		}
		if len(chapters) == 0 {
			continue
		}
		d.Chapters = chapters
		return &d
	}
	return nil
}

type heading struct {
	line  int
	level int
	title string
}

func (p *Parser) splitHeadings(raw string) *Draft {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	var heads []heading
	for i, line := range lines {
		if m := chapterHead.FindStringSubmatch(line); m != nil {
			title := strings.TrimSpace(m[2])
			if title == "" {
				title = "Chapter " + m[1]
			}
			heads = append(heads, heading{line: i, level: 2, title: title})
			continue
		}
		if m := markdownHead.FindStringSubmatch(line); m != nil {
			heads = append(heads, heading{line: i, level: len(m[1]), title: strings.TrimSpace(m[2])})
		}
	}

	d := &Draft{}
	if len(heads) == 0 {
		d.Chapters = []Chapter{{Title: "Chapter 1", Content: raw}}
		return d
	}

	// A lone top level heading ahead of deeper ones is the book title.
	if heads[0].level == 1 && len(heads) > 1 && countLevel(heads, 1) == 1 {
		d.Title = heads[0].title
		heads = heads[1:]
	}

	level := heads[0].level
	for _, h := range heads {
		if h.level < level {
			level = h.level
		}
	}

	var chapterHeads []heading
	for _, h := range heads {
		if h.level == level {
			chapterHeads = append(chapterHeads, h)
		}
	}

	if intro := joinLines(lines, introStart(d, lines), chapterHeads[0].line); intro != "" {
		d.Chapters = append(d.Chapters, Chapter{Title: "Introduction", Content: intro})
	}

	for i, h := range chapterHeads {
		end := len(lines)
		if i+1 < len(chapterHeads) {
			end = chapterHeads[i+1].line
		}
		d.Chapters = append(d.Chapters, Chapter{
			Title:   h.title,
			Content: joinLines(lines, h.line+1, end),
		})
	}
	return d
}

func introStart(d *Draft, lines []string) int {
	if d.Title == "" {
		return 0
	}
	// skip everything up to and including the title line
	for i, line := range lines {
		if m := markdownHead.FindStringSubmatch(line); m != nil && len(m[1]) == 1 {
			return i + 1
		}
	}
	return 0
}

func countLevel(heads []heading, level int) int {
	n := 0
	for _, h := range heads {
		if h.level == level {
			n++
		}
	}
	return n
}

func joinLines(lines []string, from, to int) string {
	if from >= to {
		return ""
	}
	return strings.TrimSpace(strings.Join(lines[from:to], "\n"))
}
