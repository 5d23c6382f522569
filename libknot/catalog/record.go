package catalog

import (
	proto "github.com/gogo/protobuf/proto"
)

// DiagramRecord is the value stored under each canonical diagram key.
type DiagramRecord struct {
	// Source is the notation of the first diagram that canonized to this key.
	Source string `protobuf:"bytes,1,opt,name=source,proto3" json:"source,omitempty"`
	// Braid is the braid word read off the canonical diagram (empty if none could be read).
	Braid     []int64 `protobuf:"zigzag64,2,rep,packed,name=braid,proto3" json:"braid,omitempty"`
	Moves     int32   `protobuf:"varint,3,opt,name=moves,proto3" json:"moves,omitempty"`
	Crossings int32   `protobuf:"varint,4,opt,name=crossings,proto3" json:"crossings,omitempty"`
}

func (m *DiagramRecord) Reset()         { *m = DiagramRecord{} }
func (m *DiagramRecord) String() string { return proto.CompactTextString(m) }
func (*DiagramRecord) ProtoMessage()    {}

// CatalogState is stored under the state key and tracks per-crossing-count totals.
type CatalogState struct {
	MajorVers   int32    `protobuf:"varint,1,opt,name=major_vers,json=majorVers,proto3" json:"major_vers,omitempty"`
	MinorVers   int32    `protobuf:"varint,2,opt,name=minor_vers,json=minorVers,proto3" json:"minor_vers,omitempty"`
	NumDiagrams []uint64 `protobuf:"varint,3,rep,packed,name=num_diagrams,json=numDiagrams,proto3" json:"num_diagrams,omitempty"`
}

func (m *CatalogState) Reset()         { *m = CatalogState{} }
func (m *CatalogState) String() string { return proto.CompactTextString(m) }
func (*CatalogState) ProtoMessage()    {}

func init() {
	proto.RegisterType((*DiagramRecord)(nil), "knots.catalog.DiagramRecord")
	proto.RegisterType((*CatalogState)(nil), "knots.catalog.CatalogState")
}
