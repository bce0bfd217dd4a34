package artifact

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNotSVG is returned when a payload has no <svg> root element.
var ErrNotSVG = errors.New("payload has no svg element")

// SVGInfo summarizes an SVG payload for logging.
type SVGInfo struct {
	Width    string `json:"width,omitempty"`
	Height   string `json:"height,omitempty"`
	ViewBox  string `json:"view_box,omitempty"`
	Elements int    `json:"elements"`
	Bytes    int    `json:"bytes"`
}

// InspectSVG parses data and reports the dimensions of its first <svg> element.
func InspectSVG(data []byte) (SVGInfo, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return SVGInfo{}, fmt.Errorf("parse svg: %w", err)
	}

	root := doc.Find("svg").First()
	if root.Length() == 0 {
		return SVGInfo{Bytes: len(data)}, ErrNotSVG
	}

	attr := func(name string) string {
		if v, ok := root.Attr(name); ok {
			return strings.TrimSpace(v)
		}
		return ""
	}

	return SVGInfo{
		Width:    attr("width"),
		Height:   attr("height"),
		ViewBox:  attr("viewBox"),
		Elements: root.Find("*").Length(),
		Bytes:    len(data),
	}, nil
}
