// SPDX-License-Identifier: MIT
//
// File: snapshot.go
// Role: Encode/Decode and file helpers.

package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/golang/snappy"
	"golang.org/x/exp/mmap"

	"github.com/katalvlaran/knitnet/core"
)

// Version is the record layout written by Encode.
const Version uint16 = 1

var magic = [4]byte{'K', 'N', 'I', 'T'}

var (
	// ErrBadMagic indicates input that is not a snapshot.
	ErrBadMagic = errors.New("snapshot: bad magic")

	// ErrVersion indicates a snapshot layout this package cannot read.
	ErrVersion = errors.New("snapshot: unsupported version")

	// ErrCorrupt indicates a truncated or inconsistent snapshot body.
	ErrCorrupt = errors.New("snapshot: corrupt body")
)

var (
	nodeRecordSize = binary.Size(nodeRecord{})
	edgeRecordSize = binary.Size(edgeRecord{})
)

// Encode writes g to w.
//
// Complexity: O(V + E log E).
func Encode(w io.Writer, g *core.Graph) error {
	var body bytes.Buffer
	name := g.Name()
	if len(name) > 1<<16-1 {
		name = name[:1<<16-1]
	}

	nodes := g.Nodes()
	edges := slices.Concat(g.ContourEdges(), g.WeftEdges(), g.WarpEdges(), g.SegmentEdges())
	slices.SortFunc(edges, func(a, b core.Edge) int {
		switch {
		case a.Seq < b.Seq:
			return -1
		case a.Seq > b.Seq:
			return 1
		default:
			return 0
		}
	})

	put := func(v any) {
		// bytes.Buffer writes never fail
		_ = binary.Write(&body, binary.LittleEndian, v)
	}
	put(header{CourseHeight: g.CourseHeight(), NameLen: uint16(len(name))})
	body.WriteString(name)
	put(uint32(len(nodes)))
	for _, n := range nodes {
		put(toNodeRecord(n))
	}
	put(uint32(len(edges)))
	for _, e := range edges {
		put(toEdgeRecord(e))
	}

	var head [6]byte
	copy(head[:4], magic[:])
	binary.LittleEndian.PutUint16(head[4:], Version)
	if _, err := w.Write(head[:]); err != nil {
		return fmt.Errorf("Encode: %w", err)
	}
	if _, err := w.Write(snappy.Encode(nil, body.Bytes())); err != nil {
		return fmt.Errorf("Encode: %w", err)
	}

	return nil
}

// Decode reads a snapshot written by Encode.
//
// Errors: ErrBadMagic, ErrVersion, ErrCorrupt, read errors.
func Decode(r io.Reader) (*core.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("Decode: %w", err)
	}
	if len(data) < 6 || !bytes.Equal(data[:4], magic[:]) {
		return nil, fmt.Errorf("Decode: %w", ErrBadMagic)
	}
	if v := binary.LittleEndian.Uint16(data[4:6]); v != Version {
		return nil, fmt.Errorf("Decode: version %d: %w", v, ErrVersion)
	}

	body, err := snappy.Decode(nil, data[6:])
	if err != nil {
		return nil, fmt.Errorf("Decode: %w: %w", ErrCorrupt, err)
	}
	g, err := decodeBody(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("Decode: %w", err)
	}

	return g, nil
}

func decodeBody(br *bytes.Reader) (*core.Graph, error) {
	read := func(v any) error {
		if err := binary.Read(br, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		return nil
	}
	// count reads a record count and rejects counts the remaining body cannot hold.
	count := func(size int) (int, error) {
		var n uint32
		if err := read(&n); err != nil {
			return 0, err
		}
		if int64(n)*int64(size) > int64(br.Len()) {
			return 0, fmt.Errorf("%d records of %d bytes in %d: %w", n, size, br.Len(), ErrCorrupt)
		}
		return int(n), nil
	}

	var h header
	if err := read(&h); err != nil {
		return nil, err
	}
	name := make([]byte, h.NameLen)
	if _, err := io.ReadFull(br, name); err != nil {
		return nil, fmt.Errorf("name: %w: %w", ErrCorrupt, err)
	}
	g := core.NewGraph(core.WithName(string(name)), core.WithCourseHeight(h.CourseHeight))

	nn, err := count(nodeRecordSize)
	if err != nil {
		return nil, err
	}
	for range nn {
		var rec nodeRecord
		if err = read(&rec); err != nil {
			return nil, err
		}
		var opts []core.NodeOption
		if rec.Flags&flagStart != 0 {
			opts = append(opts, core.WithStart())
		}
		if seg, ok := rec.segment(); ok {
			opts = append(opts, core.WithSegment(seg))
		}
		p := v3.Vec{X: rec.X, Y: rec.Y, Z: rec.Z}
		err = g.AddNode(core.NodeID(rec.ID), p, int(rec.Row), int(rec.Num),
			rec.Flags&flagLeaf != 0, rec.Flags&flagEnd != 0, opts...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
	}

	ne, err := count(edgeRecordSize)
	if err != nil {
		return nil, err
	}
	for range ne {
		var rec edgeRecord
		if err = read(&rec); err != nil {
			return nil, err
		}
		if err = addEdge(g, rec); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
	}

	if br.Len() != 0 {
		return nil, fmt.Errorf("%d trailing bytes: %w", br.Len(), ErrCorrupt)
	}

	return g, nil
}

func addEdge(g *core.Graph, rec edgeRecord) error {
	u, v := core.NodeID(rec.U), core.NodeID(rec.V)
	seg, hasSeg := rec.segment()

	switch core.Role(rec.Role) {
	case core.RoleContour:
		return g.AddContourEdge(u, v)
	case core.RoleWeft:
		if hasSeg {
			return g.AddWeftEdge(u, v, &seg)
		}
		return g.AddWeftEdge(u, v, nil)
	case core.RoleWarp:
		return g.AddWarpEdge(u, v)
	case core.RoleSegment:
		if !hasSeg || rec.Slot != int32(seg.Index+1) {
			return fmt.Errorf("segment edge %d-%d without matching id", u, v)
		}
		return g.AddSegmentEdge(u, v, seg)
	default:
		return fmt.Errorf("edge %d-%d: role %d", u, v, rec.Role)
	}
}

// WriteFile encodes g into path, replacing any existing file once the
// snapshot is fully written.
func WriteFile(path string, g *core.Graph) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("WriteFile: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err = Encode(tmp, g); err != nil {
		tmp.Close()
		return fmt.Errorf("WriteFile: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("WriteFile: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("WriteFile: %w", err)
	}

	return nil
}

// ReadFile decodes the snapshot at path through a read-only memory map.
func ReadFile(path string) (*core.Graph, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ReadFile: %w", err)
	}
	defer r.Close()

	g, err := Decode(io.NewSectionReader(r, 0, int64(r.Len())))
	if err != nil {
		return nil, fmt.Errorf("ReadFile: %s: %w", path, err)
	}

	return g, nil
}
