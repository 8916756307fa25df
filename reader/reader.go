package reader

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ternpdf/tern/core"
	"github.com/ternpdf/tern/resolver"
)

// Reader provides access to a PDF document's object graph.
type Reader struct {
	data    []byte
	version string
	offsets map[int]int
	trailer core.Dict
	cache   map[int]core.Object
	res     *resolver.Resolver
}

// NewReader parses the file structure of data and returns a Reader.
// Object bodies are parsed lazily.
func NewReader(data []byte) (*Reader, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, fmt.Errorf("missing PDF header")
	}
	version := "1.4"
	if idx := bytes.IndexAny(data[5:], "\r\n"); idx > 0 && idx <= 8 {
		version = string(data[5 : 5+idx])
	}

	r := &Reader{
		data:    data,
		version: version,
		offsets: make(map[int]int),
		cache:   make(map[int]core.Object),
	}
	r.res = resolver.New(r)

	if err := r.loadXref(); err != nil {
		// Damaged or unsupported xref. Scanning for object headers
		// recovers most such files.
		r.scanObjects()
	}
	if len(r.offsets) == 0 {
		return nil, fmt.Errorf("no indirect objects found")
	}
	if r.trailer == nil || !r.trailer.Has("Root") {
		if err := r.recoverTrailer(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Version returns the header version string, e.g. "1.7".
func (r *Reader) Version() string { return r.version }

// Trailer returns the trailer dictionary.
func (r *Reader) Trailer() core.Dict { return r.trailer }

// Object loads the indirect object with the given number.
func (r *Reader) Object(num int) (core.Object, error) {
	if obj, ok := r.cache[num]; ok {
		return obj, nil
	}
	offset, ok := r.offsets[num]
	if !ok {
		return nil, fmt.Errorf("object %d not in xref table", num)
	}
	p := core.NewParser(r.data)
	p.SetLengthResolver(func(ref core.IndirectRef) (core.Object, error) {
		return r.Object(ref.Number)
	})
	gotNum, _, obj, err := p.ParseIndirectAt(offset)
	if err != nil {
		return nil, fmt.Errorf("parsing object %d: %w", num, err)
	}
	if gotNum != num {
		return nil, fmt.Errorf("object number mismatch: want %d, found %d", num, gotNum)
	}
	r.cache[num] = obj
	return obj, nil
}

// Resolve follows obj if it is an indirect reference.
func (r *Reader) Resolve(obj core.Object) (core.Object, error) {
	return r.res.Resolve(obj)
}

// ResolveDeep resolves obj and all nested references.
func (r *Reader) ResolveDeep(obj core.Object) (core.Object, error) {
	return r.res.ResolveDeep(obj)
}

// Catalog returns the document catalog.
func (r *Reader) Catalog() (core.Dict, error) {
	ref, ok := r.trailer.GetRef("Root")
	if !ok {
		return nil, fmt.Errorf("trailer missing /Root")
	}
	obj, err := r.Resolve(ref)
	if err != nil {
		return nil, fmt.Errorf("resolving catalog: %w", err)
	}
	catalog, ok := obj.(core.Dict)
	if !ok {
		return nil, fmt.Errorf("catalog is %T, want dictionary", obj)
	}
	return catalog, nil
}

// Info returns the document information dictionary, or nil when the
// file has none.
func (r *Reader) Info() (core.Dict, error) {
	ref, ok := r.trailer.GetRef("Info")
	if !ok {
		return nil, nil
	}
	obj, err := r.Resolve(ref)
	if err != nil {
		return nil, fmt.Errorf("resolving info: %w", err)
	}
	info, ok := obj.(core.Dict)
	if !ok {
		return nil, nil
	}
	return info, nil
}

// loadXref locates startxref from the end of the file and parses the
// classic cross-reference table chain.
func (r *Reader) loadXref() error {
	tail := r.data
	if len(tail) > 2048 {
		tail = tail[len(tail)-2048:]
	}
	idx := bytes.LastIndex(tail, []byte("startxref"))
	if idx < 0 {
		return fmt.Errorf("startxref not found")
	}
	rest := strings.TrimSpace(string(tail[idx+len("startxref"):]))
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return fmt.Errorf("startxref offset missing")
	}
	offset, err := strconv.Atoi(fields[0])
	if err != nil {
		return fmt.Errorf("bad startxref offset %q", fields[0])
	}

	seen := make(map[int]bool)
	for offset > 0 && !seen[offset] {
		seen[offset] = true
		trailer, err := r.parseXrefSection(offset)
		if err != nil {
			return err
		}
		if r.trailer == nil {
			r.trailer = trailer
		}
		prev, ok := trailer.GetInt("Prev")
		if !ok {
			break
		}
		offset = int(prev)
	}
	return nil
}

// parseXrefSection parses one classic xref table and its trailer.
// Entries already present (from newer sections) are kept.
func (r *Reader) parseXrefSection(offset int) (core.Dict, error) {
	if offset < 0 || offset >= len(r.data) {
		return nil, fmt.Errorf("xref offset %d out of range", offset)
	}
	section := r.data[offset:]
	if !bytes.HasPrefix(bytes.TrimLeft(section, " \r\n\t"), []byte("xref")) {
		// Cross-reference streams are not classic tables.
		return nil, fmt.Errorf("no xref keyword at offset %d", offset)
	}
	trailerIdx := bytes.Index(section, []byte("trailer"))
	if trailerIdx < 0 {
		return nil, fmt.Errorf("trailer not found after xref at %d", offset)
	}

	body := string(section[:trailerIdx])
	body = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(body), "xref"))
	tokens := strings.Fields(body)
	i := 0
	for i+1 < len(tokens) {
		start, err1 := strconv.Atoi(tokens[i])
		count, err2 := strconv.Atoi(tokens[i+1])
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("malformed xref subsection header at %d", offset)
		}
		i += 2
		for j := 0; j < count; j++ {
			if i+3 > len(tokens) {
				return nil, fmt.Errorf("truncated xref subsection at %d", offset)
			}
			entryOffset, err := strconv.Atoi(tokens[i])
			flag := tokens[i+2]
			i += 3
			if err != nil {
				continue
			}
			num := start + j
			if flag == "n" {
				if _, exists := r.offsets[num]; !exists {
					r.offsets[num] = entryOffset
				}
			}
		}
	}

	p := core.NewParser(r.data)
	p.Seek(offset + trailerIdx + len("trailer"))
	obj, err := p.ParseObject()
	if err != nil {
		return nil, fmt.Errorf("parsing trailer: %w", err)
	}
	trailer, ok := obj.(core.Dict)
	if !ok {
		return nil, fmt.Errorf("trailer is %T, want dictionary", obj)
	}
	return trailer, nil
}

var objHeaderRe = regexp.MustCompile(`(?m)(\d+)\s+(\d+)\s+obj\b`)

// scanObjects rebuilds the offset table by scanning for "N G obj"
// headers. Later definitions of the same number win, matching
// incremental update semantics.
func (r *Reader) scanObjects() {
	for _, m := range objHeaderRe.FindAllSubmatchIndex(r.data, -1) {
		num, err := strconv.Atoi(string(r.data[m[2]:m[3]]))
		if err != nil {
			continue
		}
		r.offsets[num] = m[0]
	}
}

// recoverTrailer finds a usable trailer dictionary, or synthesizes one
// by locating the catalog object directly.
func (r *Reader) recoverTrailer() error {
	if idx := bytes.LastIndex(r.data, []byte("trailer")); idx >= 0 {
		p := core.NewParser(r.data)
		p.Seek(idx + len("trailer"))
		if obj, err := p.ParseObject(); err == nil {
			if dict, ok := obj.(core.Dict); ok && dict.Has("Root") {
				r.trailer = dict
				return nil
			}
		}
	}
	for num := range r.offsets {
		obj, err := r.Object(num)
		if err != nil {
			continue
		}
		dict, ok := obj.(core.Dict)
		if !ok {
			continue
		}
		if typ, ok := dict.GetName("Type"); ok && typ == "Catalog" {
			r.trailer = core.Dict{"Root": core.IndirectRef{Number: num}}
			return nil
		}
	}
	return fmt.Errorf("document catalog not found")
}
