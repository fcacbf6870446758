package songxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Node is one element of an arrangement document. The tree has no comment
// model: comments, processing instructions and directives are dropped when a
// document is parsed and have to be carried separately (see ReadComments).
type Node struct {
	Name  string
	Attrs []xml.Attr
	Text  string
	Nodes []*Node
}

// qualified flattens a raw prefix:local name so it round-trips without the
// encoder inventing namespace declarations.
func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func parseTree(r io.Reader) (*Node, error) {
	d := xml.NewDecoder(r)
	var root *Node
	var stack []*Node
	for {
		tok, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: qualified(t.Name)}
			for _, a := range t.Attr {
				n.Attrs = append(n.Attrs, xml.Attr{Name: xml.Name{Local: qualified(a.Name)}, Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("second root element <%s>", n.Name)
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Nodes = append(parent.Nodes, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("unexpected </%s>", qualified(t.Name))
			}
			n := stack[len(stack)-1]
			if name := qualified(t.Name); name != n.Name {
				return nil, fmt.Errorf("element <%s> closed by </%s>", n.Name, name)
			}
			if strings.TrimSpace(n.Text) == "" {
				n.Text = ""
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, errors.New("no root element")
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("unclosed element <%s>", stack[len(stack)-1].Name)
	}
	return root, nil
}

func (n *Node) encode(e *xml.Encoder) error {
	start := xml.StartElement{Name: xml.Name{Local: n.Name}, Attr: n.Attrs}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if n.Text != "" {
		if err := e.EncodeToken(xml.CharData(n.Text)); err != nil {
			return err
		}
	}
	for _, c := range n.Nodes {
		if err := c.encode(e); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// marshalTree writes the XML declaration followed by the indented tree.
func marshalTree(root *Node) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(xml.Header)
	e := xml.NewEncoder(&b)
	e.Indent("", "  ")
	if err := root.encode(e); err != nil {
		return nil, err
	}
	if err := e.Flush(); err != nil {
		return nil, err
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// Child returns the first direct child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Nodes {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Attr returns the value of an attribute and whether it was present.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr replaces an attribute value in place, or appends the attribute.
func (n *Node) SetAttr(name, value string) {
	for i, a := range n.Attrs {
		if a.Name.Local == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}

func (n *Node) removeChild(name string) {
	kept := n.Nodes[:0]
	for _, c := range n.Nodes {
		if c.Name != name {
			kept = append(kept, c)
		}
	}
	n.Nodes = kept
}

// songElementOrder is the element order of the arrangement schema, used to
// place elements that did not exist in the loaded file.
var songElementOrder = []string{
	"title", "arrangement", "wavefilepath", "part", "offset", "centOffset",
	"songLength", "songNameSort", "startBeat", "averageTempo", "tuning", "capo",
	"artistName", "artistNameSort", "albumName", "albumNameSort", "albumYear",
	"albumArt", "crowdSpeed", "arrangementProperties", "lastConversionDateTime",
	"internalName", "tonebase", "tonea", "toneb", "tonec", "toned", "tones",
	"phrases", "phraseIterations", "newLinkedDiffs", "linkedDiffs",
	"phraseProperties", "chordTemplates", "fretHandMuteTemplates", "ebeats",
	"sections", "events", "transcriptionTrack", "levels",
}

func elementRank(name string) int {
	for i, n := range songElementOrder {
		if n == name {
			return i
		}
	}
	return -1
}

// insertChild adds child before the first sibling that comes after it in
// the schema order, appending when there is none.
func (n *Node) insertChild(child *Node) {
	rank := elementRank(child.Name)
	if rank >= 0 {
		for i, c := range n.Nodes {
			if r := elementRank(c.Name); r > rank {
				n.Nodes = slices.Insert(n.Nodes, i, child)
				return
			}
		}
	}
	n.Nodes = append(n.Nodes, child)
}

// ensureChild returns the named child, creating it if needed.
func (n *Node) ensureChild(name string) *Node {
	if c := n.Child(name); c != nil {
		return c
	}
	c := &Node{Name: name}
	n.insertChild(c)
	return c
}
