package svg

import (
	"bufio"
	"compress/gzip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/plotdig/plotdig/model"
)

// ErrMalformed indicates that the input is not a well-formed SVG
// document. It covers XML syntax errors, a missing svg root element,
// and unparsable geometry attributes.
var ErrMalformed = errors.New("svg: malformed document")

// Document is a parsed SVG source: an ordered tree of elements with
// resolved transforms and path geometry. It is immutable once parsed.
type Document struct {
	// Root is the svg root element.
	Root *Element

	all  []*Element
	byID map[string]*Element
}

// Open parses the SVG file at the given path. Gzip-compressed input
// (SVGZ) is decompressed transparently.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}

// ParseBytes parses an SVG document from a byte slice.
func ParseBytes(data []byte) (*Document, error) {
	return Parse(strings.NewReader(string(data)))
}

// Parse reads and parses an SVG document. The reader may yield plain or
// gzip-compressed markup; non-UTF-8 encodings declared in the XML
// prolog are handled.
func Parse(r io.Reader) (*Document, error) {
	br := bufio.NewReader(r)

	// Sniff for gzip (SVGZ).
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("%w: bad gzip stream: %v", ErrMalformed, err)
		}
		defer gz.Close()
		return parseXML(gz)
	}

	return parseXML(br)
}

func parseXML(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	doc := &Document{byID: make(map[string]*Element)}
	var stack []*Element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el, err := newElement(t, parentOf(stack))
			if err != nil {
				return nil, err
			}

			if len(stack) == 0 {
				if el.Kind != KindRoot {
					return nil, fmt.Errorf("%w: root element is <%s>, not <svg>", ErrMalformed, t.Name.Local)
				}
				doc.Root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
				if parent.Kind == KindText || parent.Kind == KindTSpan {
					parent.pieces = append(parent.pieces, textPiece{child: el})
				}
			}

			doc.all = append(doc.all, el)
			if el.ID != "" {
				// First definition wins, matching renderer behavior for
				// duplicate ids.
				if _, exists := doc.byID[el.ID]; !exists {
					doc.byID[el.ID] = el
				}
			}
			stack = append(stack, el)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Kind == KindText || top.Kind == KindTSpan {
					// The decoder may split one run across tokens, e.g.
					// around entities; keep such runs as a single piece.
					if n := len(top.pieces); n > 0 && top.pieces[n-1].child == nil {
						top.pieces[n-1].chars += string(t)
					} else {
						top.pieces = append(top.pieces, textPiece{chars: string(t)})
					}
				}
			}
		}
	}

	if doc.Root == nil {
		return nil, fmt.Errorf("%w: no svg root element found", ErrMalformed)
	}

	return doc, nil
}

// newElement builds an Element from a start tag, resolving its CTM and,
// for path elements, its geometry.
func newElement(t xml.StartElement, parent *Element) (*Element, error) {
	el := &Element{
		Tag:    t.Name.Local,
		Kind:   kindOf(t.Name.Local),
		Attrs:  make(map[string]string, len(t.Attr)),
		Parent: parent,
		CTM:    model.Identity(),
	}
	if parent != nil {
		el.CTM = parent.CTM
	}

	for _, a := range t.Attr {
		el.Attrs[a.Name.Local] = a.Value
		if a.Name.Local == "id" {
			el.ID = a.Value
		}
	}

	if tr := el.Attrs["transform"]; tr != "" {
		m, err := parseTransform(tr)
		if err != nil {
			return nil, fmt.Errorf("%w: element <%s> id=%q: %v", ErrMalformed, el.Tag, el.ID, err)
		}
		el.CTM = el.CTM.Multiply(m)
	}

	if el.Kind == KindPath {
		d := el.Attrs["d"]
		if strings.TrimSpace(d) == "" {
			return nil, fmt.Errorf("%w: path id=%q has no d attribute", ErrMalformed, el.ID)
		}
		pd, err := parsePathData(d)
		if err != nil {
			return nil, fmt.Errorf("%w: path id=%q: %v", ErrMalformed, el.ID, err)
		}
		el.Path = pd.transform(el.CTM)
	}

	return el, nil
}

func parentOf(stack []*Element) *Element {
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}

func kindOf(tag string) Kind {
	switch tag {
	case "svg":
		return KindRoot
	case "g":
		return KindGroup
	case "path":
		return KindPath
	case "text":
		return KindText
	case "tspan":
		return KindTSpan
	case "use":
		return KindUse
	default:
		return KindOther
	}
}

// parseLength parses a coordinate attribute value, tolerating a px
// suffix. Percentages and other units have no meaning for the anchor
// positions the pipeline reads and report false.
func parseLength(s string) (float64, bool) {
	if fields := strings.Fields(s); len(fields) > 1 {
		// Per-glyph position lists anchor at the first position.
		s = fields[0]
	}
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
