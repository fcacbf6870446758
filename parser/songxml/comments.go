package songxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/QEStudios/CDLCArrangementBuilder/version"
)

// Comment is the text of an XML comment, without the <!-- --> delimiters.
type Comment string

// markerPrefix starts the comment that records which tool version last
// rewrote a document.
const markerPrefix = "arrbuild v"

// IsMarker reports whether c is a version marker written by this tool.
func (c Comment) IsMarker() bool {
	return strings.HasPrefix(strings.TrimSpace(string(c)), markerPrefix)
}

func markerComment(note string) Comment {
	text := " " + markerPrefix + version.VersionOrHash + " "
	if note != "" {
		text += note + " "
	}
	return sanitizeComment(text)
}

// sanitizeComment makes sure the text can be written inside <!-- -->.
func sanitizeComment(text string) Comment {
	for strings.Contains(text, "--") {
		text = strings.ReplaceAll(text, "--", "-")
	}
	if strings.HasSuffix(text, "-") {
		text += " "
	}
	return Comment(text)
}

// ReadComments returns every comment of the file at path, in document order.
func ReadComments(path string) ([]Comment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read arrangement %v: %w", path, err)
	}
	comments, err := ExtractComments(data)
	if err != nil {
		return nil, fmt.Errorf("could not read comments of %v: %w", path, err)
	}
	return comments, nil
}

// ExtractComments returns every comment in data, in document order.
func ExtractComments(data []byte) ([]Comment, error) {
	d := xml.NewDecoder(bytes.NewReader(data))
	var comments []Comment
	for {
		tok, err := d.RawToken()
		if err == io.EOF {
			return comments, nil
		}
		if err != nil {
			return nil, err
		}
		if c, ok := tok.(xml.Comment); ok {
			comments = append(comments, Comment(c))
		}
	}
}

// InjectComments inserts comments as the first children of the root element
// of data. With bumpVersion, a fresh version marker (carrying note) is written
// first and markers among comments are dropped; otherwise comments are written
// verbatim.
//
// Every comment lands inside the root element, including comments that were
// read from before <song> or after </song>. Tools that expect a prolog comment
// such as the editor's "EOF" line will find it as the first child of <song>
// instead. The placement is stable, so injecting into a file saved earlier
// gives the same bytes.
func InjectComments(data []byte, comments []Comment, bumpVersion bool, note string) ([]byte, error) {
	list := comments
	if bumpVersion {
		list = []Comment{markerComment(note)}
		for _, c := range comments {
			if !c.IsMarker() {
				list = append(list, c)
			}
		}
	}
	if len(list) == 0 {
		return data, nil
	}

	d := xml.NewDecoder(bytes.NewReader(data))
	var root xml.StartElement
	for {
		tok, err := d.RawToken()
		if err == io.EOF {
			return nil, fmt.Errorf("no root element to attach comments to")
		}
		if err != nil {
			return nil, err
		}
		if se, ok := tok.(xml.StartElement); ok {
			root = se
			break
		}
	}
	offset := int(d.InputOffset())
	head := data[:offset]
	selfClosing := bytes.HasSuffix(head, []byte("/>"))
	if selfClosing {
		head = head[:len(head)-2]
	}

	var b bytes.Buffer
	b.Grow(len(data) + 64*len(list))
	b.Write(head)
	if selfClosing {
		b.WriteByte('>')
	}
	for _, c := range list {
		b.WriteString("\n  <!--")
		b.WriteString(string(c))
		b.WriteString("-->")
	}
	if selfClosing {
		b.WriteString("\n</")
		b.WriteString(qualified(root.Name))
		b.WriteByte('>')
	}
	b.Write(data[offset:])
	return b.Bytes(), nil
}

// WriteComments reinjects comments into the file at path, which is expected
// to have been written by Save.
func WriteComments(path string, comments []Comment, bumpVersion bool, note string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read arrangement %v: %w", path, err)
	}
	data, err = InjectComments(data, comments, bumpVersion, note)
	if err != nil {
		return fmt.Errorf("could not write comments to %v: %w", path, err)
	}
	return writeFileAtomic(path, data)
}
