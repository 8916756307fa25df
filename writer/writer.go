package writer

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"sort"
	"strings"

	"github.com/ternpdf/tern/builder"
)

// Write serializes the document to PDF 1.7 bytes.
func Write(doc *builder.Document) ([]byte, error) {
	pages := doc.Pages()
	if len(pages) == 0 {
		return nil, fmt.Errorf("document has no pages")
	}

	w := &fileWriter{}
	w.buf.WriteString("%PDF-1.7\n%\xE2\xE3\xCF\xD3\n")

	// Object numbers are assigned up front so forward references in
	// the catalog and page tree resolve. Layout: catalog, page tree,
	// shared fonts, then per page its images, content stream and page
	// dict, and finally the info dict.
	catalogNum := 1
	pageTreeNum := 2
	next := 3

	fontNums := make(map[string]int)
	for _, base := range collectFonts(pages) {
		fontNums[base] = next
		next++
	}

	type pageNums struct {
		images  []int
		content int
		page    int
	}
	nums := make([]pageNums, len(pages))
	for i, p := range pages {
		var pn pageNums
		for range p.Images() {
			pn.images = append(pn.images, next)
			next++
		}
		pn.content = next
		next++
		pn.page = next
		next++
		nums[i] = pn
	}

	infoNum := 0
	if doc.Info() != (builder.Info{}) {
		infoNum = next
		next++
	}

	w.writeObject(catalogNum, fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", pageTreeNum))

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", nums[i].page)
	}
	w.writeObject(pageTreeNum, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>",
		strings.Join(kids, " "), len(pages)))

	for _, base := range collectFonts(pages) {
		w.writeObject(fontNums[base], fmt.Sprintf(
			"<< /Type /Font /Subtype /Type1 /BaseFont /%s /Encoding /WinAnsiEncoding >>", base))
	}

	for i, p := range pages {
		for j, img := range p.Images() {
			if err := w.writeImage(nums[i].images[j], img); err != nil {
				return nil, err
			}
		}
		if err := w.writeContent(nums[i].content, p.Content()); err != nil {
			return nil, err
		}
		w.writeObject(nums[i].page, pageDict(p, pageTreeNum, nums[i].content, fontNums, nums[i].images))
	}

	if infoNum != 0 {
		w.writeObject(infoNum, infoDict(doc.Info()))
	}

	xrefOffset := w.buf.Len()
	w.buf.WriteString(fmt.Sprintf("xref\n0 %d\n", next))
	w.buf.WriteString("0000000000 65535 f \n")
	for n := 1; n < next; n++ {
		w.buf.WriteString(fmt.Sprintf("%010d 00000 n \n", w.offsets[n]))
	}
	w.buf.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root %d 0 R", next, catalogNum))
	if infoNum != 0 {
		w.buf.WriteString(fmt.Sprintf(" /Info %d 0 R", infoNum))
	}
	w.buf.WriteString(" >>\n")
	w.buf.WriteString(fmt.Sprintf("startxref\n%d\n%%%%EOF\n", xrefOffset))

	return w.buf.Bytes(), nil
}

type fileWriter struct {
	buf     bytes.Buffer
	offsets map[int]int
}

func (w *fileWriter) writeObject(num int, body string) {
	w.recordOffset(num)
	fmt.Fprintf(&w.buf, "%d 0 obj\n%s\nendobj\n", num, body)
}

func (w *fileWriter) writeStream(num int, dict string, data []byte) {
	w.recordOffset(num)
	fmt.Fprintf(&w.buf, "%d 0 obj\n%s\nstream\n", num, dict)
	w.buf.Write(data)
	w.buf.WriteString("\nendstream\nendobj\n")
}

func (w *fileWriter) writeContent(num int, content []byte) error {
	compressed, err := deflate(content)
	if err != nil {
		return fmt.Errorf("compressing content stream: %w", err)
	}
	dict := fmt.Sprintf("<< /Length %d /Filter /FlateDecode >>", len(compressed))
	w.writeStream(num, dict, compressed)
	return nil
}

func (w *fileWriter) writeImage(num int, img *builder.Image) error {
	data := img.Data
	filter := img.Filter
	if filter == "" {
		var err error
		data, err = deflate(data)
		if err != nil {
			return fmt.Errorf("compressing image samples: %w", err)
		}
		filter = "FlateDecode"
	}
	dict := fmt.Sprintf(
		"<< /Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace /%s /BitsPerComponent %d /Filter /%s /Length %d >>",
		img.Width, img.Height, img.ColorSpace, img.BitsPerComponent, filter, len(data))
	w.writeStream(num, dict, data)
	return nil
}

func (w *fileWriter) recordOffset(num int) {
	if w.offsets == nil {
		w.offsets = make(map[int]int)
	}
	w.offsets[num] = w.buf.Len()
}

func pageDict(p *builder.Page, parentNum, contentNum int, fontNums map[string]int, imageNums []int) string {
	var res strings.Builder
	res.WriteString("<< ")
	if fonts := p.Fonts(); len(fonts) > 0 {
		res.WriteString("/Font << ")
		for _, f := range fonts {
			fmt.Fprintf(&res, "/%s %d 0 R ", f[0], fontNums[f[1]])
		}
		res.WriteString(">> ")
	}
	if len(imageNums) > 0 {
		res.WriteString("/XObject << ")
		for i, n := range imageNums {
			fmt.Fprintf(&res, "/Im%d %d 0 R ", i+1, n)
		}
		res.WriteString(">> ")
	}
	res.WriteString(">>")

	return fmt.Sprintf("<< /Type /Page /Parent %d 0 R /MediaBox [0 0 %g %g] /Resources %s /Contents %d 0 R >>",
		parentNum, p.Width, p.Height, res.String(), contentNum)
}

func infoDict(info builder.Info) string {
	var b strings.Builder
	b.WriteString("<<")
	writeInfoEntry(&b, "Title", info.Title)
	writeInfoEntry(&b, "Author", info.Author)
	writeInfoEntry(&b, "Creator", info.Creator)
	writeInfoEntry(&b, "Producer", info.Producer)
	b.WriteString(" >>")
	return b.String()
}

func writeInfoEntry(b *strings.Builder, key, val string) {
	if val == "" {
		return
	}
	fmt.Fprintf(b, " /%s (%s)", key, escapeString(val))
}

func escapeString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

func collectFonts(pages []*builder.Page) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range pages {
		for _, f := range p.Fonts() {
			if !seen[f[1]] {
				seen[f[1]] = true
				out = append(out, f[1])
			}
		}
	}
	sort.Strings(out)
	return out
}

func deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
