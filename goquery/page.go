// Package goquery reads metadata out of HTML pages using
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/vidinfo"
)

// Page is a parsed HTML document.
type Page struct {
	doc *goquery.Document
}

// ParsePage parses an HTML document.
func ParsePage(html []byte) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, &vidinfo.Error{Code: vidinfo.EEXTRACT, Message: "failed to parse HTML", Stage: vidinfo.StageParse, Err: err}
	}
	return &Page{doc: doc}, nil
}

// ScriptJSON finds the first inline script containing call (for example
// "Dzen.player.init") and decodes the JSON value passed as the call's
// first argument. Numbers are kept as json.Number.
func (p *Page) ScriptJSON(call string) (any, bool) {
	var (
		result any
		found  bool
	)
	p.doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		v, ok := callArgument(sel.Text(), call)
		if ok {
			result, found = v, true
			return false
		}
		return true
	})
	return result, found
}

// callArgument decodes the first JSON value following "call(" in src.
func callArgument(src, call string) (any, bool) {
	for offset := 0; ; {
		i := strings.Index(src[offset:], call)
		if i < 0 {
			return nil, false
		}
		rest := strings.TrimLeft(src[offset+i+len(call):], " \t\r\n")
		offset += i + len(call)
		if !strings.HasPrefix(rest, "(") {
			continue
		}

		dec := json.NewDecoder(strings.NewReader(rest[1:]))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err == nil && v != nil {
			return v, true
		}
	}
}

// Meta returns the content of the first <meta> tag whose property or name
// attribute equals key (e.g. "og:title"). Blank content counts as absent.
func (p *Page) Meta(key string) (string, bool) {
	for _, attr := range []string{"property", "name"} {
		sel := p.doc.Find("meta[" + attr + "=\"" + key + "\"]").First()
		if content, ok := sel.Attr("content"); ok {
			if content = strings.TrimSpace(content); content != "" {
				return content, true
			}
		}
	}
	return "", false
}

// Title returns the trimmed document title.
func (p *Page) Title() (string, bool) {
	title := strings.TrimSpace(p.doc.Find("head title").First().Text())
	return title, title != ""
}
