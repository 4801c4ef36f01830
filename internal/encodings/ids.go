package encodings

import "github.com/specialistvlad/colengine/internal/colid"

// Raw columns the defaults read from the dataframe.
var (
	ForwardsEdges    = colid.New(colid.HostBuffer, "forwardsEdges")
	BackwardsEdges   = colid.New(colid.HostBuffer, "backwardsEdges")
	PointCommunity   = colid.New(colid.Point, "__pointCommunity")
	DefaultPointSize = colid.New(colid.Point, "__defaultPointSize")
)

// Default host buffers.
var (
	ForwardsEdgeWeights  = colid.New(colid.HostBuffer, "forwardsEdgeWeights")
	BackwardsEdgeWeights = colid.New(colid.HostBuffer, "backwardsEdgeWeights")
)

// Default local buffers.
var (
	LogicalEdges              = colid.New(colid.LocalBuffer, "logicalEdges")
	ForwardsEdgeStartEndIdxs  = colid.New(colid.LocalBuffer, "forwardsEdgeStartEndIdxs")
	BackwardsEdgeStartEndIdxs = colid.New(colid.LocalBuffer, "backwardsEdgeStartEndIdxs")
	PointColors               = colid.New(colid.LocalBuffer, "pointColors")
	EdgeColors                = colid.New(colid.LocalBuffer, "edgeColors")
	PointSizes                = colid.New(colid.LocalBuffer, "pointSizes")
	EdgeHeights               = colid.New(colid.LocalBuffer, "edgeHeights")
)

// Palette is the qualitative colour palette used for point communities, as
// packed 0xRRGGBB values.
var Palette = []uint32{
	0xa6cee3, 0x1f78b4, 0xb2df8a, 0x33a02c,
	0xfb9a99, 0xe31a1c, 0xfdbf6f, 0xff7f00,
	0xcab2d6, 0x6a3d9a, 0xffff99, 0xb15928,
}
