package printer

import (
	"encoding/json"
	"sort"
	"strings"
)

// SourceMap is a version 3 source map.
type SourceMap struct {
	Version        int      `json:"version"`
	File           string   `json:"file,omitempty"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent,omitempty"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
}

// JSON encodes the map.
func (m *SourceMap) JSON() ([]byte, error) {
	return json.Marshal(m)
}

func (m *SourceMap) String() string {
	data, err := m.JSON()
	if err != nil {
		return ""
	}
	return string(data)
}

type mapping struct {
	genLine, genCol int
	srcLine, srcCol int
}

// mapOffset records that the current output position corresponds to byte
// offset off of the primary source.
func (p *printer) mapOffset(off int) {
	if p.primary == nil || len(p.lines) == 0 {
		return
	}
	line := sort.Search(len(p.lines), func(i int) bool { return p.lines[i] > off }) - 1
	if line < 0 {
		line = 0
	}
	m := mapping{genLine: p.line, genCol: p.col, srcLine: line, srcCol: off - p.lines[line]}
	if n := len(p.mappings); n > 0 {
		last := &p.mappings[n-1]
		if last.genLine == m.genLine && last.genCol == m.genCol {
			*last = m
			return
		}
	}
	p.mappings = append(p.mappings, m)
}

func (p *printer) sourceMap() *SourceMap {
	m := &SourceMap{Version: 3, File: p.opts.SourceMapName, Sources: []string{}, Names: []string{}}
	if p.primary == nil {
		return m
	}
	name := p.opts.SourceFileName
	if name == "" {
		name = p.primary.Name
	}
	m.Sources = []string{name}
	m.SourcesContent = []string{string(p.primary.Text)}
	m.Mappings = encodeMappings(p.mappings)
	return m
}

func encodeMappings(mappings []mapping) string {
	var (
		b                       strings.Builder
		line, prevCol           int
		prevSrcLine, prevSrcCol int
	)
	first := true
	for _, m := range mappings {
		for line < m.genLine {
			b.WriteByte(';')
			line++
			prevCol = 0
			first = true
		}
		if !first {
			b.WriteByte(',')
		}
		first = false
		encodeVLQ(&b, m.genCol-prevCol)
		encodeVLQ(&b, 0)
		encodeVLQ(&b, m.srcLine-prevSrcLine)
		encodeVLQ(&b, m.srcCol-prevSrcCol)
		prevCol = m.genCol
		prevSrcLine = m.srcLine
		prevSrcCol = m.srcCol
	}
	return b.String()
}

const base64Digits = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

func encodeVLQ(b *strings.Builder, v int) {
	u := v << 1
	if v < 0 {
		u = (-v << 1) | 1
	}
	for {
		digit := u & 31
		u >>= 5
		if u > 0 {
			digit |= 32
		}
		b.WriteByte(base64Digits[digit])
		if u == 0 {
			return
		}
	}
}
