package store

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/specialistvlad/pathgraph/internal/geometry"
	"github.com/specialistvlad/pathgraph/internal/location"
)

// XMLLocationsVersion is written on the <locations> root element.
const XMLLocationsVersion = "1.0"

type xmlPaths struct {
	XMLName xml.Name  `xml:"paths"`
	Paths   []xmlPath `xml:"path"`
}

type xmlPath struct {
	Points []xmlPoint `xml:"point"`
}

type xmlPoint struct {
	X string `xml:"x,attr"`
	Y string `xml:"y,attr"`
}

type xmlLocations struct {
	XMLName   xml.Name      `xml:"locations"`
	Version   string        `xml:"version,attr,omitempty"`
	MaxID     string        `xml:"maxid,attr,omitempty"`
	Locations []xmlLocation `xml:"location"`
}

// xmlLocation keeps its attributes raw: the editor wrote camelCase names but
// read lowercase ones, so both spellings exist in the wild.
type xmlLocation struct {
	Attrs    []xml.Attr `xml:",any,attr"`
	Name     string     `xml:"name"`
	Aliases  []string   `xml:"aliases>alias"`
	Keywords string     `xml:"keywords,omitempty"`
	Code     string     `xml:"code,omitempty"`
}

// atoi parses an integer attribute; anything unparsable reads as 0.
func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func attr(attrs []xml.Attr, name string) (string, bool) {
	for _, a := range attrs {
		if strings.EqualFold(a.Name.Local, name) {
			return a.Value, true
		}
	}
	return "", false
}

func boolAttr(attrs []xml.Attr, name string, def bool) bool {
	v, ok := attr(attrs, name)
	if !ok {
		return def
	}
	return strings.EqualFold(strings.TrimSpace(v), "true")
}

// DecodeXMLPaths parses a <paths> document.
func DecodeXMLPaths(data []byte) ([]geometry.Path, error) {
	var doc xmlPaths
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	out := make([]geometry.Path, 0, len(doc.Paths))
	for _, xp := range doc.Paths {
		p := make(geometry.Path, 0, len(xp.Points))
		for _, pt := range xp.Points {
			p = append(p, geometry.Pt(atoi(pt.X), atoi(pt.Y)))
		}
		out = append(out, p)
	}
	return out, nil
}

// EncodeXMLPaths renders paths as a <paths> document. Empty paths are
// skipped.
func EncodeXMLPaths(paths []geometry.Path) ([]byte, error) {
	doc := xmlPaths{}
	for _, p := range paths {
		if len(p) == 0 {
			continue
		}
		xp := xmlPath{Points: make([]xmlPoint, 0, len(p))}
		for _, pt := range p {
			xp.Points = append(xp.Points, xmlPoint{X: strconv.Itoa(pt.X), Y: strconv.Itoa(pt.Y)})
		}
		doc.Paths = append(doc.Paths, xp)
	}
	return marshalXML(doc)
}

// DecodeXMLLocations parses a <locations> document. Missing flags take the
// editor's defaults: no pass-through, intersections allowed, name displayed.
// maxID is the root's maxid attribute, or 0.
func DecodeXMLLocations(data []byte) (locs []*location.Location, maxID int, err error) {
	var doc xmlLocations
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, 0, err
	}
	locs = make([]*location.Location, 0, len(doc.Locations))
	for _, xl := range doc.Locations {
		l := &location.Location{
			Name:               strings.TrimSpace(xl.Name),
			Keywords:           strings.TrimSpace(xl.Keywords),
			BuildingCode:       strings.TrimSpace(xl.Code),
			CanPassThrough:     boolAttr(xl.Attrs, "passThrough", false),
			AllowIntersections: boolAttr(xl.Attrs, "intersect", true),
			DisplayName:        boolAttr(xl.Attrs, "displayName", true),
		}
		if v, ok := attr(xl.Attrs, "id"); ok {
			l.ID = atoi(v)
		}
		x, _ := attr(xl.Attrs, "x")
		y, _ := attr(xl.Attrs, "y")
		l.Coord = geometry.Pt(atoi(x), atoi(y))
		for _, a := range xl.Aliases {
			if a = strings.TrimSpace(a); a != "" {
				l.AddAlias(a)
			}
		}
		locs = append(locs, l)
	}
	return locs, atoi(doc.MaxID), nil
}

// EncodeXMLLocations renders locations as a <locations> document.
func EncodeXMLLocations(locs []*location.Location) ([]byte, error) {
	doc := xmlLocations{Version: XMLLocationsVersion}
	for _, l := range locs {
		doc.Locations = append(doc.Locations, xmlLocation{
			Attrs: []xml.Attr{
				{Name: xml.Name{Local: "x"}, Value: strconv.Itoa(l.Coord.X)},
				{Name: xml.Name{Local: "y"}, Value: strconv.Itoa(l.Coord.Y)},
				{Name: xml.Name{Local: "id"}, Value: strconv.Itoa(l.ID)},
				{Name: xml.Name{Local: "passThrough"}, Value: strconv.FormatBool(l.CanPassThrough)},
				{Name: xml.Name{Local: "intersect"}, Value: strconv.FormatBool(l.AllowIntersections)},
				{Name: xml.Name{Local: "displayName"}, Value: strconv.FormatBool(l.DisplayName)},
			},
			Name:     l.Name,
			Aliases:  l.Aliases,
			Keywords: l.Keywords,
			Code:     l.BuildingCode,
		})
	}
	return marshalXML(doc)
}

func marshalXML(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "\t")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
