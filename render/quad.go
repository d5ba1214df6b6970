package render

import (
	"encoding/binary"
	"math"
)

// quadVertexStride is the byte stride of one quad vertex.
// Layout: position (vec2<f32>) + uv (vec2<f32>) = 16 bytes.
const quadVertexStride = 16

// quadIndexCount is the index count of the shared two-triangle quad.
const quadIndexCount = 6

// cellQuadVertexData returns the unit cell quad. Positions span
// [0,1]^2 with the origin at the quad's lower left; UVs put v=0 at the
// top of the tile so texture rows read top-down.
func cellQuadVertexData() []byte {
	return packQuadVertices([4][4]float32{
		{1, 0, 1, 1},
		{0, 0, 0, 1},
		{0, 1, 0, 0},
		{1, 1, 1, 0},
	})
}

// screenQuadVertexData returns the fullscreen quad in clip space with
// the same UV orientation as the intermediate target.
func screenQuadVertexData() []byte {
	return packQuadVertices([4][4]float32{
		{1, -1, 1, 1},
		{-1, -1, 0, 1},
		{-1, 1, 0, 0},
		{1, 1, 1, 0},
	})
}

// quadIndexData returns the two-triangle index list 0,1,2 2,3,0.
func quadIndexData() []byte {
	indices := []uint16{0, 1, 2, 2, 3, 0}
	data := make([]byte, len(indices)*2)
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(data[i*2:], idx)
	}
	return data
}

func packQuadVertices(verts [4][4]float32) []byte {
	data := make([]byte, 4*quadVertexStride)
	off := 0
	for _, v := range verts {
		for _, f := range v {
			binary.LittleEndian.PutUint32(data[off:], math.Float32bits(f))
			off += 4
		}
	}
	return data
}

// bgraToRGBA converts BGRA readback bytes to RGBA, writing into dst.
// Both slices must hold pixelCount*4 bytes; src and dst may alias.
func bgraToRGBA(src, dst []byte, pixelCount int) {
	for i := 0; i < pixelCount; i++ {
		o := i * 4
		b, g, r, a := src[o+0], src[o+1], src[o+2], src[o+3]
		dst[o+0] = r
		dst[o+1] = g
		dst[o+2] = b
		dst[o+3] = a
	}
}
