// Package epub reads and writes EPUB containers well enough to hand each
// spine document's markup tree to the relocation engine and package the
// mutated trees back up. It is not a general-purpose EPUB library: only
// the OCF container layout, the OPF manifest/spine, and XHTML content
// documents are interpreted; every other entry is carried through
// byte-for-byte.
package epub

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"golang.org/x/net/html"
)

const (
	containerPath = "META-INF/container.xml"
	mimetypePath  = "mimetype"
	epubMimetype  = "application/epub+zip"
)

// Document is one spine (content) document of the book.
type Document struct {
	Name string     // zip entry name
	Root *html.Node // parsed markup tree, mutated in place by injection

	raw    []byte
	failed bool // parse failure; carried through unmodified
}

// Revert re-parses the document from its pristine bytes, discarding every
// mutation. Used when a document-level invariant failure means no partial
// tree may be written.
func (d *Document) Revert() error {
	root, err := html.Parse(bytes.NewReader(d.raw))
	if err != nil {
		return fmt.Errorf("re-parsing %s: %w", d.Name, err)
	}
	d.Root = root
	return nil
}

// Book is an opened EPUB: the ordered spine documents plus every other
// container entry, kept for rewriting.
type Book struct {
	Title     string
	Documents []*Document

	entryOrder []string
	entries    map[string][]byte
	methods    map[string]uint16
	docByName  map[string]*Document
}

type container struct {
	Rootfiles []struct {
		FullPath string `xml:"full-path,attr"`
	} `xml:"rootfiles>rootfile"`
}

type packageDoc struct {
	Metadata struct {
		Title string `xml:"title"`
	} `xml:"metadata"`
	Manifest struct {
		Items []struct {
			ID        string `xml:"id,attr"`
			Href      string `xml:"href,attr"`
			MediaType string `xml:"media-type,attr"`
		} `xml:"item"`
	} `xml:"manifest"`
	Spine struct {
		Itemrefs []struct {
			IDRef string `xml:"idref,attr"`
		} `xml:"itemref"`
	} `xml:"spine"`
}

// Open reads an EPUB and parses its spine documents in reading order.
// A content document that fails to parse is kept as an opaque entry and
// skipped by relocation; a missing container or OPF is fatal.
func Open(epubPath string) (*Book, error) {
	zr, err := zip.OpenReader(epubPath)
	if err != nil {
		return nil, fmt.Errorf("opening epub: %w", err)
	}
	defer zr.Close()

	book := &Book{
		entries:   make(map[string][]byte),
		methods:   make(map[string]uint16),
		docByName: make(map[string]*Document),
	}

	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}
		book.entryOrder = append(book.entryOrder, f.Name)
		book.entries[f.Name] = data
		book.methods[f.Name] = f.Method
	}

	opfPath, err := book.rootfilePath()
	if err != nil {
		return nil, err
	}
	if err := book.parseSpine(opfPath); err != nil {
		return nil, err
	}
	return book, nil
}

func (b *Book) rootfilePath() (string, error) {
	data, ok := b.entries[containerPath]
	if !ok {
		return "", fmt.Errorf("not a valid epub: missing %s", containerPath)
	}
	var c container
	if err := xml.Unmarshal(data, &c); err != nil {
		return "", fmt.Errorf("parsing %s: %w", containerPath, err)
	}
	if len(c.Rootfiles) == 0 {
		return "", fmt.Errorf("parsing %s: no rootfile declared", containerPath)
	}
	return c.Rootfiles[0].FullPath, nil
}

func (b *Book) parseSpine(opfPath string) error {
	data, ok := b.entries[opfPath]
	if !ok {
		return fmt.Errorf("missing package document %s", opfPath)
	}
	var pkg packageDoc
	if err := xml.Unmarshal(data, &pkg); err != nil {
		return fmt.Errorf("parsing %s: %w", opfPath, err)
	}
	b.Title = strings.TrimSpace(pkg.Metadata.Title)

	hrefByID := make(map[string]string, len(pkg.Manifest.Items))
	mediaByID := make(map[string]string, len(pkg.Manifest.Items))
	for _, item := range pkg.Manifest.Items {
		hrefByID[item.ID] = item.Href
		mediaByID[item.ID] = item.MediaType
	}

	opfDir := path.Dir(opfPath)
	for _, ref := range pkg.Spine.Itemrefs {
		href, ok := hrefByID[ref.IDRef]
		if !ok {
			continue
		}
		if mt := mediaByID[ref.IDRef]; mt != "" && mt != "application/xhtml+xml" && mt != "text/html" {
			continue
		}

		name := href
		if opfDir != "." {
			name = path.Join(opfDir, href)
		}
		raw, ok := b.entries[name]
		if !ok {
			continue
		}

		doc := &Document{Name: name, raw: raw}
		if root, err := html.Parse(bytes.NewReader(raw)); err == nil {
			doc.Root = root
		} else {
			doc.failed = true
		}
		b.Documents = append(b.Documents, doc)
		b.docByName[name] = doc
	}

	if len(b.Documents) == 0 {
		return fmt.Errorf("package document %s declares no content documents", opfPath)
	}
	return nil
}

// Parsable returns the spine documents whose trees are available for
// relocation, in reading order.
func (b *Book) Parsable() []*Document {
	var out []*Document
	for _, d := range b.Documents {
		if !d.failed {
			out = append(out, d)
		}
	}
	return out
}
