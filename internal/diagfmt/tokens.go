package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"hyperlex/internal/parser"
	"hyperlex/internal/token"
)

const typeColumn = 26

// FormatTreePretty prints the token tree, one token per line, indented by
// depth. Groups show their delimiters; values are quoted and padded by
// display width so CJK rows stay aligned.
func FormatTreePretty(w io.Writer, res *parser.Result, opts TreeOpts) error {
	maxWidth := opts.MaxValueWidth
	if maxWidth <= 0 {
		maxWidth = 40
	}
	valueWidth := 0
	res.Walk(func(t *token.Token, _ int) bool {
		valueWidth = max(valueWidth, runewidth.StringWidth(quote(tokenLabel(t))))
		return true
	})
	valueWidth = min(valueWidth, maxWidth)

	group := painter(opts.Color, color.FgMagenta, color.Bold)
	hyper := painter(opts.Color, color.FgCyan)
	bad := painter(opts.Color, color.FgRed)
	dim := painter(opts.Color, color.Faint)

	var werr error
	res.Walk(func(t *token.Token, depth int) bool {
		if werr != nil {
			return false
		}
		indent := strings.Repeat("  ", depth)
		typ := t.Type.String()
		pad := strings.Repeat(" ", max(typeColumn-len(indent)-len(typ), 1))
		switch {
		case t.IsGroup():
			typ = group(typ)
		case t.Type == token.Unmatched || t.Type == token.Indeterminate:
			typ = bad(typ)
		case t.Type.IsHyper():
			typ = hyper(typ)
		}

		value := runewidth.Truncate(quote(tokenLabel(t)), maxWidth, "…")
		value = runewidth.FillRight(value, valueWidth)

		var extra []string
		extra = append(extra, fmt.Sprintf("[%d,%d)", t.Index, t.End()))
		if t.SpaceAfter != "" {
			extra = append(extra, "space="+strconv.Quote(t.SpaceAfter))
		}
		if t.IsGroup() && t.InnerSpaceBefore != "" {
			extra = append(extra, "inner="+strconv.Quote(t.InnerSpaceBefore))
		}
		if opts.ShowMarks {
			if m := res.Mark(t.Mark); m != nil {
				label := fmt.Sprintf("mark=%s#%d", m.Type, m.ID)
				if m.Meta != "" {
					label += "(" + m.Meta + ")"
				}
				extra = append(extra, label)
			}
		}
		_, werr = fmt.Fprintf(w, "%s%s%s%s %s\n", indent, typ, pad, value, dim(strings.Join(extra, " ")))
		return werr == nil
	})
	return werr
}

// tokenLabel is the value of a single token or "open…close" for a group.
func tokenLabel(t *token.Token) string {
	if t.IsGroup() {
		return t.Pair.StartValue + "…" + t.Pair.EndValue
	}
	return t.Value
}

// quote keeps printable non-ASCII text readable, unlike strconv.Quote.
func quote(s string) string {
	if strings.ContainsFunc(s, unicode.IsControl) {
		return strconv.Quote(s)
	}
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

type TokenJSON struct {
	ID               token.ID    `json:"id"`
	Type             string      `json:"type"`
	Index            int         `json:"index"`
	Length           int         `json:"length"`
	Value            string      `json:"value,omitempty"`
	SpaceAfter       string      `json:"space_after,omitempty"`
	InnerSpaceBefore string      `json:"inner_space_before,omitempty"`
	StartValue       string      `json:"start_value,omitempty"`
	EndValue         string      `json:"end_value,omitempty"`
	Mark             *int        `json:"mark,omitempty"`
	MarkSide         string      `json:"mark_side,omitempty"`
	Children         []TokenJSON `json:"children,omitempty"`
}

type MarkJSON struct {
	ID         token.MarkID `json:"id"`
	Type       string       `json:"type"`
	Meta       string       `json:"meta,omitempty"`
	Single     bool         `json:"single,omitempty"`
	StartIndex int          `json:"start_index"`
	StartValue string       `json:"start_value"`
	EndIndex   *int         `json:"end_index"`
	EndValue   string       `json:"end_value,omitempty"`
}

type TreeOutput struct {
	File   string     `json:"file,omitempty"`
	Root   TokenJSON  `json:"root"`
	Marks  []MarkJSON `json:"marks"`
	Errors []string   `json:"errors,omitempty"`
}

// BuildTreeOutput converts a parse result into its JSON shape. Unresolved
// mark ends are null.
func BuildTreeOutput(path string, res *parser.Result) TreeOutput {
	out := TreeOutput{File: path, Errors: res.Errors, Marks: make([]MarkJSON, 0, len(res.Marks))}
	if root := res.RootToken(); root != nil {
		out.Root = tokenJSON(res, root)
	}
	for i := range res.Marks {
		m := &res.Marks[i]
		mj := MarkJSON{
			ID: m.ID, Type: m.Type.String(), Meta: m.Meta, Single: m.Single,
			StartIndex: m.Pair.StartIndex, StartValue: m.Pair.StartValue, EndValue: m.Pair.EndValue,
		}
		if m.Pair.Resolved() {
			end := m.Pair.EndIndex
			mj.EndIndex = &end
		}
		out.Marks = append(out.Marks, mj)
	}
	return out
}

func tokenJSON(res *parser.Result, t *token.Token) TokenJSON {
	tj := TokenJSON{
		ID: t.ID, Type: t.Type.String(), Index: t.Index, Length: t.Length,
		Value: t.Value, SpaceAfter: t.SpaceAfter, MarkSide: t.MarkSide.String(),
	}
	if t.HasMark() {
		id := int(t.Mark)
		tj.Mark = &id
	}
	if t.IsGroup() {
		tj.Value = ""
		tj.InnerSpaceBefore = t.InnerSpaceBefore
		tj.StartValue = t.Pair.StartValue
		tj.EndValue = t.Pair.EndValue
		tj.Children = make([]TokenJSON, 0, len(t.Children))
		for _, c := range t.Children {
			tj.Children = append(tj.Children, tokenJSON(res, res.Token(c)))
		}
	}
	return tj
}

// FormatTreeJSON writes the tree and marks of res as indented JSON.
func FormatTreeJSON(w io.Writer, path string, res *parser.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildTreeOutput(path, res))
}

// FormatMarks prints one row per mark.
func FormatMarks(w io.Writer, res *parser.Result, colored bool) error {
	head := painter(colored, color.Bold)
	bad := painter(colored, color.FgRed)
	if _, err := fmt.Fprintln(w, head(fmt.Sprintf("%4s  %-10s %-20s %-7s %-7s %s", "ID", "TYPE", "META", "START", "END", "VALUES"))); err != nil {
		return err
	}
	for i := range res.Marks {
		m := &res.Marks[i]
		var end string
		values := quote(m.Pair.StartValue)
		switch {
		case m.Single:
			end = "single"
		case m.Pair.Resolved():
			end = strconv.Itoa(m.Pair.EndIndex)
			values += " " + quote(m.Pair.EndValue)
		default:
			end = bad("open")
		}
		if _, err := fmt.Fprintf(w, "%4d  %-10s %-20s %-7d %-7s %s\n",
			m.ID, m.Type, m.Meta, m.Pair.StartIndex, end, values); err != nil {
			return err
		}
	}
	return nil
}
