package data

import (
	"fmt"

	"github.com/mmp/squall/internal"
)

// tagTreeNode is one node of a JPEG 2000 tag tree (T.800 Annex B.10.2),
// used to decode the per-code-block inclusion and zero-bitplane-count
// values packed into a packet header.
type tagTreeNode struct {
	parent   *tagTreeNode
	low      int
	known    bool
}

type tagTree struct {
	// levels[0] holds the leaves (one per code-block, raster order);
	// each subsequent level holds the 2x2-reduced parent nodes.
	levels     [][]*tagTreeNode
	leavesW    int
	leavesH    int
}

func newTagTree(w, h int) *tagTree {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	t := &tagTree{leavesW: w, leavesH: h}

	levelW, levelH := w, h
	for {
		level := make([]*tagTreeNode, levelW*levelH)
		for i := range level {
			level[i] = &tagTreeNode{}
		}
		t.levels = append(t.levels, level)

		if levelW == 1 && levelH == 1 {
			break
		}
		levelW = (levelW + 1) / 2
		levelH = (levelH + 1) / 2
	}

	// Wire parent pointers: level i node (x,y) has parent at level i+1,
	// node (x/2, y/2).
	widths := make([]int, len(t.levels))
	heights := make([]int, len(t.levels))
	w0, h0 := w, h
	for i := range t.levels {
		widths[i], heights[i] = w0, h0
		w0 = (w0 + 1) / 2
		h0 = (h0 + 1) / 2
	}
	for i := 0; i < len(t.levels)-1; i++ {
		for y := 0; y < heights[i]; y++ {
			for x := 0; x < widths[i]; x++ {
				node := t.levels[i][y*widths[i]+x]
				py, px := y/2, x/2
				node.parent = t.levels[i+1][py*widths[i+1]+px]
			}
		}
	}

	return t
}

// decode implements the standard tag-tree decoding procedure: walk from
// the root down to the requested leaf, reading one bit at a time for
// every node whose cumulative lower bound is still <= threshold and
// whose value is not yet known, stopping as soon as a node's value
// remains undetermined. It returns the resolved low bound and whether
// the leaf's actual value was determined (<=threshold).
func (t *tagTree) decode(br *internal.BitReader, x, y, threshold int) (int, bool, error) {
	widths := make([]int, len(t.levels))
	w0 := t.leavesW
	for i := range t.levels {
		widths[i] = w0
		w0 = (w0 + 1) / 2
	}

	// Collect the path from leaf to root.
	path := make([]*tagTreeNode, 0, len(t.levels))
	lx, ly := x, y
	for i := 0; i < len(t.levels); i++ {
		path = append(path, t.levels[i][ly*widths[i]+lx])
		lx, ly = lx/2, ly/2
	}

	low := 0
	for i := len(path) - 1; i >= 0; i-- {
		node := path[i]
		if node.low < low {
			node.low = low
		}
		for !node.known && node.low <= threshold {
			bit, err := br.ReadBits(1)
			if err != nil {
				return 0, false, err
			}
			if bit == 1 {
				node.known = true
			} else {
				node.low++
			}
		}
		low = node.low
		if !node.known {
			return low, false, nil
		}
	}
	return low, true, nil
}

// codeBlockState tracks per-code-block packet-header bookkeeping and the
// compressed data segment accumulated across packets (a single packet in
// this decoder's single-layer scope).
type codeBlockState struct {
	x, y           int // code-block index within its subband's grid
	width, height  int
	originX, originY int // sample offset of this block's (0,0) within the subband plane
	orientHint     int
	included       bool
	zeroBitplanes  int
	numPasses      int
	lblock         int
	data           []byte
}

// codeBlockGrid holds the full set of code-blocks for one subband plus
// the two tag trees (inclusion, zero-bitplanes) used to decode their
// packet-header entries.
type codeBlockGrid struct {
	blocks               []*codeBlockState
	numCBx, numCBy       int
	nominalW, nominalH   int
	inclusion            *tagTree
	zeroBP               *tagTree
}

func newCodeBlockGrid(sb subband, cbWidth, cbHeight int) *codeBlockGrid {
	numCBx := (sb.width + cbWidth - 1) / cbWidth
	numCBy := (sb.height + cbHeight - 1) / cbHeight
	if numCBx == 0 {
		numCBx = 1
	}
	if numCBy == 0 {
		numCBy = 1
	}

	g := &codeBlockGrid{
		numCBx: numCBx, numCBy: numCBy,
		nominalW: cbWidth, nominalH: cbHeight,
		inclusion: newTagTree(numCBx, numCBy),
		zeroBP:    newTagTree(numCBx, numCBy),
	}

	for cy := 0; cy < numCBy; cy++ {
		for cx := 0; cx < numCBx; cx++ {
			x0 := cx * cbWidth
			y0 := cy * cbHeight
			w := cbWidth
			if x0+w > sb.width {
				w = sb.width - x0
			}
			h := cbHeight
			if y0+h > sb.height {
				h = sb.height - y0
			}
			g.blocks = append(g.blocks, &codeBlockState{
				x: cx, y: cy, width: w, height: h,
				originX: x0, originY: y0, orientHint: sb.orient, lblock: 3,
			})
		}
	}

	return g
}

// readPacketForSubband decodes one packet header (this decoder supports
// exactly one quality layer, so there is exactly one packet per subband)
// and appends the resulting compressed segments' byte ranges to each
// code-block, leaving the bit reader positioned at the start of the
// packet body.
func readPacketForSubband(br *internal.BitReader, g *codeBlockGrid) error {
	zeroLen, err := br.ReadBits(1)
	if err != nil {
		return fmt.Errorf("packet empty-flag: %w", err)
	}
	if zeroLen == 0 {
		return nil // empty packet: no code-block in this subband is included
	}

	type pending struct {
		block  *codeBlockState
		length int
	}
	var toRead []pending

	for cy := 0; cy < g.numCBy; cy++ {
		for cx := 0; cx < g.numCBx; cx++ {
			cb := g.blocks[cy*g.numCBx+cx]

			if !cb.included {
				_, included, err := g.inclusion.decode(br, cx, cy, 0)
				if err != nil {
					return fmt.Errorf("inclusion tag tree: %w", err)
				}
				if !included {
					continue
				}
				cb.included = true

				zbp, resolved, err := g.zeroBP.decode(br, cx, cy, 1<<20)
				if err != nil {
					return fmt.Errorf("zero-bitplane tag tree: %w", err)
				}
				if !resolved {
					return fmt.Errorf("zero-bitplane tag tree failed to resolve")
				}
				cb.zeroBitplanes = zbp
			} else {
				// Already included in an earlier layer; this decoder only
				// supports one layer, so this path is unreachable, but an
				// inclusion bit is still coded per the packet format.
				bit, err := br.ReadBits(1)
				if err != nil {
					return err
				}
				if bit == 0 {
					continue
				}
			}

			numPasses, err := readNumCodingPasses(br)
			if err != nil {
				return fmt.Errorf("coding pass count: %w", err)
			}
			cb.numPasses = numPasses

			for {
				bit, err := br.ReadBits(1)
				if err != nil {
					return err
				}
				if bit == 0 {
					break
				}
				cb.lblock++
			}

			lenBits := cb.lblock + floorLog2(numPasses)
			if lenBits == 0 {
				lenBits = 1
			}
			length, err := br.ReadBits(lenBits)
			if err != nil {
				return fmt.Errorf("segment length: %w", err)
			}

			toRead = append(toRead, pending{block: cb, length: int(length)})
		}
	}

	br.Align()

	for _, p := range toRead {
		data, err := readAlignedBytes(br, p.length)
		if err != nil {
			return fmt.Errorf("code-block data: %w", err)
		}
		p.block.data = append(p.block.data, data...)
	}

	return nil
}

// readNumCodingPasses decodes the variable-length coding-pass-count
// codeword of Table B.4.
func readNumCodingPasses(br *internal.BitReader) (int, error) {
	bit, err := br.ReadBits(1)
	if err != nil {
		return 0, err
	}
	if bit == 0 {
		return 1, nil
	}
	bit, err = br.ReadBits(1)
	if err != nil {
		return 0, err
	}
	if bit == 0 {
		return 2, nil
	}
	v, err := br.ReadBits(2)
	if err != nil {
		return 0, err
	}
	if v != 3 {
		return 3 + int(v), nil
	}
	v, err = br.ReadBits(5)
	if err != nil {
		return 0, err
	}
	if v != 31 {
		return 6 + int(v), nil
	}
	v, err = br.ReadBits(7)
	if err != nil {
		return 0, err
	}
	return 37 + int(v), nil
}

func readAlignedBytes(br *internal.BitReader, n int) ([]byte, error) {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		v, err := br.ReadBits(8)
		if err != nil {
			return nil, err
		}
		out[i] = byte(v)
	}
	return out, nil
}
