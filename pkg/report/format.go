package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Formatter writes a formatted report to w
type Formatter interface {
	Format(w io.Writer, r Report) error
}

// NewFormatter returns the formatter for the given format name
func NewFormatter(format string) (Formatter, error) {
	switch strings.ToLower(format) {
	case "json":
		return &JSONFormatter{}, nil
	case "csv":
		return &CSVFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// jsonPost is the CLI JSON row schema. Full text and relative date are
// web-only fields and are intentionally excluded here.
type jsonPost struct {
	Handle    string `json:"handle"`
	PostDate  string `json:"post_date"`
	PostURL   string `json:"post_url"`
	FirstLine string `json:"first_line"`
	Likes     int    `json:"likes"`
	Reposts   int    `json:"reposts"`
	Replies   int    `json:"replies"`
	Quotes    int    `json:"quotes"`
	URI       string `json:"uri"`
}

type jsonReport struct {
	DID         string     `json:"did"`
	Handle      string     `json:"handle"`
	PostCount   int        `json:"post_count"`
	GeneratedAt string     `json:"generated_at"`
	Posts       []jsonPost `json:"posts"`
}

// JSONFormatter serializes a report as indented JSON with stable key order.
// An empty report still carries the full structure with "posts": [].
type JSONFormatter struct{}

// Format writes the report as JSON to w
func (f *JSONFormatter) Format(w io.Writer, r Report) error {
	posts := make([]jsonPost, 0, len(r.Posts))
	for _, s := range r.Posts {
		posts = append(posts, jsonPost{
			Handle:    s.Handle,
			PostDate:  s.PostDate,
			PostURL:   s.PostURL,
			FirstLine: s.FirstLine,
			Likes:     s.Likes,
			Reposts:   s.Reposts,
			Replies:   s.Replies,
			Quotes:    s.Quotes,
			URI:       s.URI,
		})
	}

	out := jsonReport{
		DID:         r.DID,
		Handle:      r.Handle,
		PostCount:   r.PostCount,
		GeneratedAt: r.GeneratedAt,
		Posts:       posts,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// csvColumns is the fixed CSV column order
var csvColumns = []string{
	"handle", "post_date", "post_url", "first_line",
	"likes", "reposts", "replies", "quotes", "uri",
}

// CSVFormatter serializes a report as CSV with a fixed column schema.
// Zero summaries yield no output at all, not even a header row.
type CSVFormatter struct{}

// Format writes the report as CSV to w
func (f *CSVFormatter) Format(w io.Writer, r Report) error {
	if len(r.Posts) == 0 {
		return nil
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvColumns); err != nil {
		return err
	}

	for _, s := range r.Posts {
		row := []string{
			s.Handle,
			s.PostDate,
			s.PostURL,
			s.FirstLine,
			strconv.Itoa(s.Likes),
			strconv.Itoa(s.Reposts),
			strconv.Itoa(s.Replies),
			strconv.Itoa(s.Quotes),
			s.URI,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
