package songxml

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/QEStudios/CDLCArrangementBuilder/tuning"
)

// A tone change entry of a multitone arrangement.
type Tone struct {
	Time string // Apply time, kept exactly as written.
	ID   int    // Tone slot id.
	Name string

	extra []xmlAttr
}

type xmlAttr struct {
	name, value string
}

// Song is an arrangement document. The exported fields are a typed view of
// the parts of the document the builder reads and repairs; everything else is
// kept in the element tree and written back unchanged by Save.
type Song struct {
	// Version is the format marker on the root element ("7" for files made
	// for the 2014 game).
	Version string

	// CentOffset is nil when the document has no centOffset element.
	CentOffset *float64

	// Tuning is nil when the document has no tuning element.
	Tuning *tuning.Strings

	ToneBase string
	ToneA    string
	ToneB    string
	ToneC    string
	ToneD    string

	// Tones is nil when the document has no tones element, and empty when the
	// element is present without entries.
	Tones []Tone

	root *Node
}

var toneNameElements = []string{"tonebase", "tonea", "toneb", "tonec", "toned"}

// Load reads and parses an arrangement file.
func Load(path string) (*Song, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read arrangement %v: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("could not parse arrangement %v: %w", path, err)
	}
	return s, nil
}

// Parse builds a Song from the contents of an arrangement file.
func Parse(data []byte) (*Song, error) {
	root, err := parseTree(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if root.Name != "song" {
		return nil, fmt.Errorf("root element is <%s>, expected <song>", root.Name)
	}
	s := &Song{root: root}
	s.Version, _ = root.Attr("version")

	if el := root.Child("centOffset"); el != nil {
		v, err := strconv.ParseFloat(el.Text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid centOffset %q: %w", el.Text, err)
		}
		s.CentOffset = &v
	}

	if el := root.Child("tuning"); el != nil {
		var offsets [tuning.NumStrings]int
		for i := range offsets {
			name := fmt.Sprintf("string%d", i)
			v, ok := el.Attr(name)
			if !ok {
				continue
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("invalid tuning %s %q: %w", name, v, err)
			}
			offsets[i] = n
		}
		t := tuning.FromArray(offsets)
		s.Tuning = &t
	}

	names := []*string{&s.ToneBase, &s.ToneA, &s.ToneB, &s.ToneC, &s.ToneD}
	for i, el := range toneNameElements {
		if c := root.Child(el); c != nil {
			*names[i] = c.Text
		}
	}

	if el := root.Child("tones"); el != nil {
		s.Tones = []Tone{}
		for _, c := range el.Nodes {
			if c.Name != "tone" {
				continue
			}
			tone, err := parseTone(c)
			if err != nil {
				return nil, err
			}
			s.Tones = append(s.Tones, tone)
		}
	}
	return s, nil
}

func parseTone(n *Node) (Tone, error) {
	var t Tone
	for _, a := range n.Attrs {
		switch a.Name.Local {
		case "time":
			t.Time = a.Value
		case "id":
			id, err := strconv.Atoi(a.Value)
			if err != nil {
				return Tone{}, fmt.Errorf("invalid tone id %q: %w", a.Value, err)
			}
			t.ID = id
		case "name":
			t.Name = a.Value
		default:
			t.extra = append(t.extra, xmlAttr{a.Name.Local, a.Value})
		}
	}
	return t, nil
}

func (t Tone) node() *Node {
	n := &Node{Name: "tone"}
	if t.Time != "" {
		n.SetAttr("time", t.Time)
	}
	n.SetAttr("id", strconv.Itoa(t.ID))
	n.SetAttr("name", t.Name)
	for _, a := range t.extra {
		n.SetAttr(a.name, a.value)
	}
	return n
}

// Title returns the song title stored in the document.
func (s *Song) Title() string {
	if el := s.root.Child("title"); el != nil {
		return el.Text
	}
	return ""
}

// Arrangement returns the arrangement name stored in the document.
func (s *Song) Arrangement() string {
	if el := s.root.Child("arrangement"); el != nil {
		return el.Text
	}
	return ""
}

// sync writes the typed fields back into the element tree.
func (s *Song) sync() {
	root := s.root
	if s.Version != "" {
		root.SetAttr("version", s.Version)
	}

	if s.CentOffset != nil {
		el := root.ensureChild("centOffset")
		if v, err := strconv.ParseFloat(el.Text, 64); err != nil || v != *s.CentOffset {
			el.Text = strconv.FormatFloat(*s.CentOffset, 'f', -1, 64)
		}
	}

	if s.Tuning != nil {
		el := root.ensureChild("tuning")
		for i, v := range s.Tuning.Array() {
			el.SetAttr(fmt.Sprintf("string%d", i), strconv.Itoa(v))
		}
	}

	values := []string{s.ToneBase, s.ToneA, s.ToneB, s.ToneC, s.ToneD}
	for i, name := range toneNameElements {
		if el := root.Child(name); el != nil {
			el.Text = values[i]
		} else if values[i] != "" {
			root.insertChild(&Node{Name: name, Text: values[i]})
		}
	}

	if s.Tones == nil {
		root.removeChild("tones")
	} else {
		el := root.ensureChild("tones")
		el.SetAttr("count", strconv.Itoa(len(s.Tones)))
		el.Text = ""
		el.Nodes = nil
		for _, t := range s.Tones {
			el.Nodes = append(el.Nodes, t.node())
		}
	}
}

// Marshal serializes the document. The output contains no comments.
func (s *Song) Marshal() ([]byte, error) {
	s.sync()
	return marshalTree(s.root)
}

// Save writes the typed content of the document to path. Comments are not
// written; use SaveWithComments to keep them.
func (s *Song) Save(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return fmt.Errorf("could not serialize arrangement: %w", err)
	}
	return writeFileAtomic(path, data)
}

// SaveWithComments writes the typed content and the given comments in a
// single atomic replace of path.
func (s *Song) SaveWithComments(path string, comments []Comment, bumpVersion bool, note string) error {
	data, err := s.Marshal()
	if err != nil {
		return fmt.Errorf("could not serialize arrangement: %w", err)
	}
	data, err = InjectComments(data, comments, bumpVersion, note)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}
