// Package frontmatter splits, parses, and reassembles the `---`-delimited
// YAML headers that precede every post body in the content store.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Style captures formatting details needed for stable rewriting.
//
// It intentionally focuses on newline shape and does not attempt to
// preserve original YAML formatting.
type Style struct {
	Newline            string
	HasTrailingNewline bool
}

// Header is the typed post metadata block.
//
// The pipeline never mutates existing posts; writing happens only when a
// new post is scaffolded, via Join.
type Header struct {
	Layout string   `yaml:"layout"`
	Title  string   `yaml:"title"`
	Date   PostDate `yaml:"date"`
	Tags   TagList  `yaml:"tags"`
}

// PostDate unmarshals the publication date formats used in post headers:
// RFC3339, and the common "2006-01-02 15:04:05 -0700" / "2006-01-02" forms.
type PostDate struct {
	time.Time
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (d *PostDate) UnmarshalYAML(value *yaml.Node) error {
	// yaml.v3 may already decode an unquoted date as a timestamp.
	var t time.Time
	if err := value.Decode(&t); err == nil {
		d.Time = t
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("date must be a string or timestamp: %w", err)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("unrecognized date %q", s)
}

// TagList accepts both YAML sequences and a single scalar tag.
type TagList []string

func (t *TagList) UnmarshalYAML(value *yaml.Node) error {
	var many []string
	if err := value.Decode(&many); err == nil {
		*t = many
		return nil
	}
	var one string
	if err := value.Decode(&one); err != nil {
		return fmt.Errorf("tags must be a string or list of strings")
	}
	if one == "" {
		*t = nil
		return nil
	}
	*t = []string{one}
	return nil
}

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a YAML frontmatter delimiter, had is
// false and body is the full input.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, style Style, err error) {
	style = detectStyle(content)

	nl := style.Newline
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, style, nil
	}

	frontmatterStart := len(open)
	closeLine := []byte("---" + nl)
	if bytes.HasPrefix(content[frontmatterStart:], closeLine) {
		bodyStart := frontmatterStart + len(closeLine)
		return []byte{}, content[bodyStart:], true, style, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[frontmatterStart:], closeSeq)
	if idx < 0 {
		return nil, nil, false, style, ErrMissingClosingDelimiter
	}

	frontmatterEnd := frontmatterStart + idx + len(nl)
	bodyStart := frontmatterStart + idx + len(closeSeq)
	return content[frontmatterStart:frontmatterEnd], content[bodyStart:], true, style, nil
}

// DecodeHeader parses raw YAML frontmatter (without --- delimiters) into a Header.
func DecodeHeader(frontmatter []byte) (Header, error) {
	var h Header
	if len(frontmatter) == 0 {
		return h, nil
	}
	if err := yaml.Unmarshal(frontmatter, &h); err != nil {
		return Header{}, err
	}
	return h, nil
}

// Join assembles a document from raw YAML frontmatter (without ---
// delimiters) and a Markdown body, the inverse of Split. The style's
// newline sequence is used for the delimiter lines.
func Join(frontmatter, body []byte, style Style) []byte {
	nl := style.Newline
	if nl == "" {
		nl = "\n"
	}

	var b bytes.Buffer
	b.WriteString("---" + nl)
	b.Write(frontmatter)
	if len(frontmatter) > 0 && !bytes.HasSuffix(frontmatter, []byte(nl)) {
		b.WriteString(nl)
	}
	b.WriteString("---" + nl)
	b.Write(body)
	return b.Bytes()
}

func detectStyle(content []byte) Style {
	newline := "\n"
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			newline = "\r\n"
			break
		}
		if content[i] == '\n' {
			newline = "\n"
			break
		}
	}

	hasTrailingNewline := len(content) > 0 && (content[len(content)-1] == '\n')

	return Style{
		Newline:            newline,
		HasTrailingNewline: hasTrailingNewline,
	}
}
