// SPDX-License-Identifier: MIT
//
// File: records.go
// Role: fixed-width node and edge records.

package snapshot

import (
	"github.com/katalvlaran/knitnet/core"
)

const (
	flagLeaf uint8 = 1 << iota
	flagEnd
	flagStart
	flagSegment
)

type header struct {
	CourseHeight float64
	NameLen      uint16
}

type nodeRecord struct {
	ID       int64
	Row      int32
	Num      int32
	X, Y, Z  float64
	SegStart int64
	SegEnd   int64
	SegIndex int32
	Flags    uint8
}

type edgeRecord struct {
	U        int64
	V        int64
	Slot     int32
	SegStart int64
	SegEnd   int64
	SegIndex int32
	Role     uint8
	Flags    uint8
}

func segmentFields(s *core.SegmentID) (start, end int64, index int32) {
	if s == nil {
		return 0, 0, 0
	}

	return int64(s.Start), int64(s.End), int32(s.Index)
}

func toNodeRecord(n core.Node) nodeRecord {
	r := nodeRecord{
		ID:  int64(n.ID),
		Row: int32(n.Row),
		Num: int32(n.Num),
		X:   n.Point.X,
		Y:   n.Point.Y,
		Z:   n.Point.Z,
	}
	if n.Leaf {
		r.Flags |= flagLeaf
	}
	if n.End {
		r.Flags |= flagEnd
	}
	if n.Start {
		r.Flags |= flagStart
	}
	if n.Segment != nil {
		r.Flags |= flagSegment
		r.SegStart, r.SegEnd, r.SegIndex = segmentFields(n.Segment)
	}

	return r
}

func toEdgeRecord(e core.Edge) edgeRecord {
	r := edgeRecord{
		U:    int64(e.Key.U),
		V:    int64(e.Key.V),
		Slot: int32(e.Key.Slot),
		Role: uint8(e.Role),
	}
	if e.Segment != nil {
		r.Flags |= flagSegment
		r.SegStart, r.SegEnd, r.SegIndex = segmentFields(e.Segment)
	}

	return r
}

func (r nodeRecord) segment() (core.SegmentID, bool) {
	return core.SegmentID{Start: core.NodeID(r.SegStart), End: core.NodeID(r.SegEnd), Index: int(r.SegIndex)},
		r.Flags&flagSegment != 0
}

func (r edgeRecord) segment() (core.SegmentID, bool) {
	return core.SegmentID{Start: core.NodeID(r.SegStart), End: core.NodeID(r.SegEnd), Index: int(r.SegIndex)},
		r.Flags&flagSegment != 0
}
