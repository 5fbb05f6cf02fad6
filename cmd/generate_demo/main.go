// Command generate_demo creates a sample EPUB and a matching My Clippings.txt
// from public domain text, so the tool can be tried without a Kindle.
// Usage: go run cmd/generate_demo/main.go [-out path/to/dir]
package main

import (
	"archive/zip"
	"flag"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const defaultDemoDir = "./demo"

type chapter struct {
	file  string
	title string
	paras []string
}

type clipping struct {
	kind     string
	location string
	added    string
	text     string
}

// Excerpts from "Alice's Adventures in Wonderland" by Lewis Carroll.
var chapters = []chapter{
	{
		file:  "ch1.xhtml",
		title: "Down the Rabbit-Hole",
		paras: []string{
			"Alice was beginning to get very tired of sitting by her sister on the bank, and of having nothing to do: once or twice she had peeped into the book her sister was reading, but it had no pictures or conversations in it.",
			"So she was considering in her own mind (as well as she could, for the hot day made her feel very sleepy and stupid), whether the pleasure of making a daisy-chain would be worth the trouble of getting up and picking the daisies, when suddenly a White Rabbit with pink eyes ran close by her.",
			"There was nothing so very remarkable in that; nor did Alice think it so very much out of the way to hear the Rabbit say to itself, \"Oh dear! Oh dear! I shall be late!\"",
		},
	},
	{
		file:  "ch2.xhtml",
		title: "The Pool of Tears",
		paras: []string{
			"\"Curiouser and curiouser!\" cried Alice (she was so much surprised, that for the moment she quite forgot how to speak good English).",
			"\"Now I'm opening out like the largest telescope that ever was! Good-bye, feet!\"",
			"And she went on planning to herself how she would manage it. \"They must go by the carrier,\" she thought; \"and how funny it'll seem, sending presents to one's own feet!\"",
		},
	},
}

var demoClippings = []clipping{
	{
		kind:     "Highlight",
		location: "12-14",
		added:    "Monday, August 4, 2025 10:15:32 PM",
		text:     "once or twice she had peeped into the book her sister was reading, but it had no pictures or conversations in it",
	},
	{
		kind:     "Highlight",
		location: "31-33",
		added:    "Monday, August 4, 2025 10:22:07 PM",
		text:     "suddenly a White Rabbit with pink eyes ran close by her",
	},
	{
		kind:     "Note",
		location: "33",
		added:    "Monday, August 4, 2025 10:22:41 PM",
		text:     "the story really starts here",
	},
	{
		kind:     "Highlight",
		location: "58-60",
		added:    "Tuesday, August 5, 2025 8:03:19 AM",
		text:     "\"Curiouser and curiouser!\" cried Alice",
	},
}

func main() {
	outDir := flag.String("out", defaultDemoDir, "directory to write the demo files to")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	epubPath := filepath.Join(*outDir, "alice.epub")
	if err := writeDemoEpub(epubPath); err != nil {
		log.Fatalf("Failed to write demo EPUB: %v", err)
	}
	log.Printf("Wrote %s", epubPath)

	clipPath := filepath.Join(*outDir, "My Clippings.txt")
	if err := os.WriteFile(clipPath, []byte(renderClippings()), 0o644); err != nil {
		log.Fatalf("Failed to write demo clippings: %v", err)
	}
	log.Printf("Wrote %s (%d clippings)", clipPath, len(demoClippings))

	log.Printf("Try: re-kindle process -epub %s -clippings %q", epubPath, clipPath)
}

func writeDemoEpub(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := zip.NewWriter(f)

	// The mimetype entry must come first and stay uncompressed.
	mt, err := w.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		return err
	}
	if _, err := mt.Write([]byte("application/epub+zip")); err != nil {
		return err
	}

	entries := map[string]string{
		"META-INF/container.xml": containerXML,
		"OEBPS/content.opf":      packageOPF(),
	}
	for _, ch := range chapters {
		entries["OEBPS/"+ch.file] = renderChapter(ch)
	}

	// Deterministic archive layout.
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ew, err := w.Create(name)
		if err != nil {
			return err
		}
		if _, err := ew.Write([]byte(entries[name])); err != nil {
			return err
		}
	}

	return w.Close()
}

const containerXML = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>
`

func packageOPF() string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="uid">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:identifier id="uid">urn:uuid:0f9a1c3e-demo</dc:identifier>
    <dc:title>Alice's Adventures in Wonderland</dc:title>
    <dc:creator>Lewis Carroll</dc:creator>
    <dc:language>en</dc:language>
  </metadata>
  <manifest>
`)
	for i, ch := range chapters {
		b.WriteString(`    <item id="ch`)
		b.WriteString(string(rune('1' + i)))
		b.WriteString(`" href="`)
		b.WriteString(ch.file)
		b.WriteString(`" media-type="application/xhtml+xml"/>
`)
	}
	b.WriteString(`  </manifest>
  <spine>
`)
	for i := range chapters {
		b.WriteString(`    <itemref idref="ch`)
		b.WriteString(string(rune('1' + i)))
		b.WriteString(`"/>
`)
	}
	b.WriteString(`  </spine>
</package>
`)
	return b.String()
}

func renderChapter(ch chapter) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml"><head><title>`)
	b.WriteString(ch.title)
	b.WriteString(`</title></head><body>
<h1>`)
	b.WriteString(ch.title)
	b.WriteString("</h1>\n")
	for _, p := range ch.paras {
		b.WriteString("<p>")
		b.WriteString(htmlEscape(p))
		b.WriteString("</p>\n")
	}
	b.WriteString("</body></html>\n")
	return b.String()
}

func htmlEscape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func renderClippings() string {
	var b strings.Builder
	for _, c := range demoClippings {
		b.WriteString("Alice's Adventures in Wonderland (Lewis Carroll)\n")
		b.WriteString("- Your ")
		b.WriteString(c.kind)
		b.WriteString(" on page 1 | Location ")
		b.WriteString(c.location)
		b.WriteString(" | Added on ")
		b.WriteString(c.added)
		b.WriteString("\n\n")
		b.WriteString(c.text)
		b.WriteString("\n==========\n")
	}
	return b.String()
}
