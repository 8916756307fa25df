package writer

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/ternpdf/tern/builder"
)

func buildTestDoc() *builder.Document {
	doc := builder.New()
	doc.SetInfo(builder.Info{Title: "Test (draft)", Producer: "tern"})
	page := doc.NewPage(612, 792)
	page.DrawText("Hello", 72, 700, builder.TextOptions{Size: 12})
	page.DrawRectangle(50, 450, 200, 150, builder.PathOptions{
		Fill:      true,
		FillColor: [3]float64{0.2, 0.4, 0.8},
	})
	return doc
}

func TestWriteStructure(t *testing.T) {
	data, err := Write(buildTestDoc())
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	if !bytes.HasPrefix(data, []byte("%PDF-1.7\n")) {
		t.Errorf("missing header, got %q", data[:16])
	}
	if !bytes.HasSuffix(data, []byte("%%EOF\n")) {
		t.Errorf("missing %%%%EOF trailer")
	}

	s := string(data)
	for _, frag := range []string{
		"/Type /Catalog",
		"/Type /Pages",
		"/Type /Page ",
		"/Type /Font /Subtype /Type1 /BaseFont /Helvetica",
		"/MediaBox [0 0 612 792]",
		"/Filter /FlateDecode",
		"xref\n",
		"trailer\n",
		"startxref\n",
	} {
		if !strings.Contains(s, frag) {
			t.Errorf("output missing %q", frag)
		}
	}
	// Info strings escape parentheses.
	if !strings.Contains(s, `/Title (Test \(draft\))`) {
		t.Error("info title not escaped")
	}
}

func TestWriteDeterministic(t *testing.T) {
	first, err := Write(buildTestDoc())
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	second, err := Write(buildTestDoc())
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("repeated writes differ")
	}
}

func TestWriteEmptyDocument(t *testing.T) {
	if _, err := Write(builder.New()); err == nil {
		t.Error("Write accepted a document with no pages")
	}
}

func TestWriteXrefOffsets(t *testing.T) {
	data, err := Write(buildTestDoc())
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	s := string(data)

	// startxref points at the xref table.
	m := regexp.MustCompile(`startxref\n(\d+)\n%%EOF\n$`).FindStringSubmatch(s)
	if m == nil {
		t.Fatal("startxref not found")
	}
	off, _ := strconv.Atoi(m[1])
	if !strings.HasPrefix(s[off:], "xref\n") {
		t.Errorf("startxref %d does not point at the xref keyword", off)
	}

	// Each in-use entry points at its "N 0 obj" header.
	entries := regexp.MustCompile(`(\d{10}) 00000 n `).FindAllStringSubmatch(s, -1)
	if len(entries) == 0 {
		t.Fatal("no xref entries found")
	}
	for i, e := range entries {
		objOff, _ := strconv.Atoi(e[1])
		want := fmt.Sprintf("%d 0 obj\n", i+1)
		if !strings.HasPrefix(s[objOff:], want) {
			t.Errorf("xref entry %d offset %d does not point at %q", i+1, objOff, want)
		}
	}
}

func TestWriteMultiplePages(t *testing.T) {
	doc := builder.New()
	doc.NewPage(612, 792).DrawText("one", 72, 700, builder.TextOptions{Size: 12})
	doc.NewPage(595, 842).DrawText("two", 72, 700, builder.TextOptions{Size: 12})

	data, err := Write(doc)
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, "/Count 2") {
		t.Error("page tree count wrong")
	}
	if !strings.Contains(s, "/MediaBox [0 0 612 792]") || !strings.Contains(s, "/MediaBox [0 0 595 842]") {
		t.Error("per-page media boxes missing")
	}
	// Helvetica is shared, so only one font object is written.
	if got := strings.Count(s, "/BaseFont /Helvetica"); got != 1 {
		t.Errorf("got %d font objects, want 1 shared", got)
	}
}

func TestWriteImageObject(t *testing.T) {
	doc := builder.New()
	page := doc.NewPage(612, 792)
	img := &builder.Image{
		Width:            2,
		Height:           2,
		ColorSpace:       "DeviceRGB",
		BitsPerComponent: 8,
		Data:             bytes.Repeat([]byte{10, 20, 30}, 4),
	}
	page.DrawImage(img, 100, 600, 50, 50)

	data, err := Write(doc)
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, "/Subtype /Image /Width 2 /Height 2 /ColorSpace /DeviceRGB") {
		t.Error("image dict missing")
	}
	// Raw samples get flate compressed.
	if !strings.Contains(s, "/XObject << /Im1 ") {
		t.Error("image resource entry missing")
	}
}

func TestWriteJPEGPassthrough(t *testing.T) {
	doc := builder.New()
	page := doc.NewPage(612, 792)
	jpegBytes := []byte{0xFF, 0xD8, 0xFF, 0xDB, 0x00, 0x04, 0xFF, 0xD9}
	img := &builder.Image{
		Width:            1,
		Height:           1,
		ColorSpace:       "DeviceRGB",
		BitsPerComponent: 8,
		Filter:           "DCTDecode",
		Data:             jpegBytes,
	}
	page.DrawImage(img, 0, 0, 10, 10)

	data, err := Write(doc)
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if !strings.Contains(string(data), "/Filter /DCTDecode") {
		t.Error("DCTDecode filter missing")
	}
	if !bytes.Contains(data, jpegBytes) {
		t.Error("jpeg bytes were re-encoded instead of embedded")
	}
}
