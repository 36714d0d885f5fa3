package data

import "fmt"

// mqState is one row of the MQ-coder probability estimation table
// (T.800 Table C.2 / T.88 Table E.1): Qe is the probability of the
// less-probable symbol, nmps/nlps are the next state indices on an MPS
// or LPS transition, and switchMPS flags states where the MPS/LPS sense
// flips on an LPS transition.
type mqState struct {
	qe        uint32
	nmps      uint8
	nlps      uint8
	switchMPS bool
}

var mqTable = [47]mqState{
	{0x5601, 1, 1, true}, {0x3401, 2, 6, false}, {0x1801, 3, 9, false}, {0x0AC1, 4, 12, false},
	{0x0521, 5, 29, false}, {0x0221, 38, 33, false}, {0x5601, 7, 6, true}, {0x5401, 8, 14, false},
	{0x4801, 9, 14, false}, {0x3801, 10, 14, false}, {0x3001, 11, 17, false}, {0x2401, 12, 18, false},
	{0x1C01, 13, 20, false}, {0x1601, 29, 21, false}, {0x5601, 15, 14, true}, {0x5401, 16, 14, false},
	{0x5101, 17, 15, false}, {0x4801, 18, 16, false}, {0x3801, 19, 17, false}, {0x3401, 20, 18, false},
	{0x3001, 21, 19, false}, {0x2801, 22, 19, false}, {0x2401, 23, 20, false}, {0x2201, 24, 21, false},
	{0x1C01, 25, 22, false}, {0x1801, 26, 23, false}, {0x1601, 27, 24, false}, {0x1401, 28, 25, false},
	{0x1201, 29, 26, false}, {0x1101, 30, 27, false}, {0x0AC1, 31, 28, false}, {0x09C1, 32, 29, false},
	{0x08A1, 33, 30, false}, {0x0521, 34, 31, false}, {0x0441, 35, 32, false}, {0x02A1, 36, 33, false},
	{0x0221, 37, 34, false}, {0x0141, 38, 35, false}, {0x0111, 39, 36, false}, {0x0085, 40, 37, false},
	{0x0049, 41, 38, false}, {0x0025, 42, 39, false}, {0x0015, 43, 40, false}, {0x0009, 44, 41, false},
	{0x0005, 45, 42, false}, {0x0001, 45, 43, false}, {0x5601, 46, 46, false},
}

// mqContext is the per-context adaptive state (current table row and MPS
// sense) threaded through zero-coding, sign-coding, magnitude-refinement
// and run-length decisions.
type mqContext struct {
	index uint8
	mps   uint8
}

// mqDecoder implements the MQ arithmetic decoder of T.800 Annex C
// (INITDEC / DECODE / BYTEIN), operating directly on the compressed
// byte segment for a single code-block.
type mqDecoder struct {
	data   []byte
	bp     int
	c      uint32
	a      uint32
	ct     int
}

func newMQDecoder(data []byte) *mqDecoder {
	d := &mqDecoder{data: data}
	d.initDec()
	return d
}

func (d *mqDecoder) byteAt(i int) uint32 {
	if i >= len(d.data) {
		return 0xFF
	}
	return uint32(d.data[i])
}

func (d *mqDecoder) initDec() {
	d.bp = 0
	b := d.byteAt(0)
	d.c = b << 16
	d.byteIn()
	d.c <<= 7
	d.ct -= 7
	d.a = 0x8000
}

func (d *mqDecoder) byteIn() {
	if d.byteAt(d.bp) == 0xFF {
		if d.byteAt(d.bp+1) > 0x8F {
			d.c += 0xFF00
			d.ct = 8
		} else {
			d.bp++
			d.c += d.byteAt(d.bp) << 9
			d.ct = 7
		}
	} else {
		d.bp++
		d.c += d.byteAt(d.bp) << 8
		d.ct = 8
	}
}

// decode returns one decision bit for the given context, updating the
// context's probability estimation state.
func (d *mqDecoder) decode(cx *mqContext) uint8 {
	state := mqTable[cx.index]
	d.a -= state.qe

	var bit uint8
	if (d.c >> 16) < uint32(state.qe) {
		// LPS exchange (or MPS, depending on A vs Qe per the spec's
		// conditional-exchange rule).
		if d.a < state.qe {
			bit = cx.mps
			cx.index = state.nmps
		} else {
			bit = 1 - cx.mps
			if state.switchMPS {
				cx.mps = 1 - cx.mps
			}
			cx.index = state.nlps
		}
		d.a = state.qe
	} else {
		d.c -= uint32(state.qe) << 16
		if d.a&0x8000 != 0 {
			return cx.mps
		}
		if d.a < state.qe {
			bit = 1 - cx.mps
			if state.switchMPS {
				cx.mps = 1 - cx.mps
			}
			cx.index = state.nlps
		} else {
			bit = cx.mps
			cx.index = state.nmps
		}
	}

	for d.a&0x8000 == 0 {
		if d.ct == 0 {
			d.byteIn()
		}
		d.a <<= 1
		d.c <<= 1
		d.ct--
	}

	return bit
}

// Context label assignment (T.800 Table D.1/D.2/D.3), indexed 0..16:
//
//	0-8:   zero-coding, indexed by the horizontal/vertical/diagonal
//	       significant-neighbor counts, varying by subband orientation.
//	9-13:  sign-coding, indexed by horizontal/vertical sign contributions.
//	14-16: magnitude-refinement, by first-refinement/neighbor-significance.
//	17:    run-length context.
//	18:    uniform (bypass) context, used for the cleanup pass's sign bit.
const (
	ctxRunLength = 17
	ctxUniform   = 18
	numContexts  = 19
)

type codeBlockCoeffs struct {
	width, height int
	mag           []int32 // accumulated magnitude, MSB-first as bits arrive
	sign          []bool
	sigState      []bool // becomes significant once a 1 bit is coded for it
	processed     []bool // coded by the significance-propagation pass this plane
	newlySig      []bool // became significant during the current plane's SPP
	refined       []bool // has undergone at least one magnitude-refinement pass
}

func newCodeBlockCoeffs(w, h int) *codeBlockCoeffs {
	n := w * h
	return &codeBlockCoeffs{
		width: w, height: h,
		mag: make([]int32, n), sign: make([]bool, n),
		sigState: make([]bool, n), processed: make([]bool, n),
		newlySig: make([]bool, n), refined: make([]bool, n),
	}
}

// scanOrder visits every (x,y) in a code-block in the stripe-column order
// T.800 D.3 mandates: four-row-high stripes, walked column by column,
// top to bottom within each column.
func scanOrder(width, height int, visit func(x, y int)) {
	for y0 := 0; y0 < height; y0 += 4 {
		rows := 4
		if y0+rows > height {
			rows = height - y0
		}
		for x := 0; x < width; x++ {
			for dy := 0; dy < rows; dy++ {
				visit(x, y0+dy)
			}
		}
	}
}

func (c *codeBlockCoeffs) decodeSignificance(dec *mqDecoder, contexts []mqContext, x, y, orient int) bool {
	idx := c.at(x, y)
	h, v, d := c.neighborCounts(x, y)
	ctxLabel := zeroCodingContext(h, v, d, orient)
	bit := dec.decode(&contexts[ctxLabel])
	if bit == 0 {
		return false
	}
	c.sigState[idx] = true
	c.newlySig[idx] = true

	combined := c.signContribution(x, y)
	ctx, expectNeg := signContext(combined)
	signBit := dec.decode(&contexts[ctx])
	c.sign[idx] = (signBit == 1) != expectNeg
	c.mag[idx] = 1
	return true
}

// runSignificancePropagationPass codes the significance of every
// not-yet-significant coefficient that has at least one significant
// 8-neighbor, in the standard stripe-column scan order.
func runSignificancePropagationPass(dec *mqDecoder, contexts []mqContext, c *codeBlockCoeffs, plane, orient int) {
	for i := range c.processed {
		c.processed[i] = false
		c.newlySig[i] = false
	}

	scanOrder(c.width, c.height, func(x, y int) {
		idx := c.at(x, y)
		if c.sigState[idx] {
			return
		}
		h, v, d := c.neighborCounts(x, y)
		if h+v+d == 0 {
			return
		}
		c.processed[idx] = true
		c.decodeSignificance(dec, contexts, x, y, orient)
	})
}

// runMagnitudeRefinementPass codes one refinement bit for every
// coefficient that was already significant before this plane's
// significance-propagation pass.
func runMagnitudeRefinementPass(dec *mqDecoder, contexts []mqContext, c *codeBlockCoeffs, plane int) {
	scanOrder(c.width, c.height, func(x, y int) {
		idx := c.at(x, y)
		if !c.sigState[idx] || c.newlySig[idx] {
			return
		}
		ctxLabel := uint8(14)
		if !c.refined[idx] {
			h, v, d := c.neighborCounts(x, y)
			if h+v+d > 0 {
				ctxLabel = 15
			} else {
				ctxLabel = 14
			}
		} else {
			ctxLabel = 16
		}
		bit := dec.decode(&contexts[ctxLabel])
		c.mag[idx] = c.mag[idx]<<1 | int32(bit)
		c.refined[idx] = true
	})
}

// runCleanupPass codes the significance of every coefficient left
// untouched by this plane's significance-propagation pass (those with no
// significant neighbor at SPP time), using the run-length shortcut for
// whole four-sample column groups that remain neighbor-free.
func runCleanupPass(dec *mqDecoder, contexts []mqContext, c *codeBlockCoeffs, plane, orient int) {
	for y0 := 0; y0 < c.height; y0 += 4 {
		rows := 4
		if y0+rows > c.height {
			rows = c.height - y0
		}
		for x := 0; x < c.width; x++ {
			if rows == 4 && groupEligibleForRunLength(c, x, y0) {
				bit := dec.decode(&contexts[ctxRunLength])
				if bit == 0 {
					continue // all four samples in this column group stay insignificant
				}
				first := int(dec.decode(&contexts[ctxUniform]))<<1 | int(dec.decode(&contexts[ctxUniform]))
				for dy := 0; dy < 4; dy++ {
					y := y0 + dy
					idx := c.at(x, y)
					if dy < first {
						continue
					}
					if dy == first {
						c.sigState[idx] = true
						c.newlySig[idx] = true
						combined := c.signContribution(x, y)
						ctx, expectNeg := signContext(combined)
						signBit := dec.decode(&contexts[ctx])
						c.sign[idx] = (signBit == 1) != expectNeg
						c.mag[idx] = 1
						continue
					}
					c.decodeSignificance(dec, contexts, x, y, orient)
				}
				continue
			}

			for dy := 0; dy < rows; dy++ {
				y := y0 + dy
				idx := c.at(x, y)
				if c.sigState[idx] || c.processed[idx] {
					continue
				}
				c.decodeSignificance(dec, contexts, x, y, orient)
			}
		}
	}
}

// groupEligibleForRunLength reports whether the four samples in the
// column group starting at (x,y0) are all unprocessed, insignificant,
// and free of any significant neighbor, making them eligible for the
// cleanup pass's run-length coding shortcut.
func groupEligibleForRunLength(c *codeBlockCoeffs, x, y0 int) bool {
	for dy := 0; dy < 4; dy++ {
		y := y0 + dy
		idx := c.at(x, y)
		if c.sigState[idx] || c.processed[idx] {
			return false
		}
		h, v, d := c.neighborCounts(x, y)
		if h+v+d != 0 {
			return false
		}
	}
	return true
}

func (c *codeBlockCoeffs) at(x, y int) int { return y*c.width + x }

func (c *codeBlockCoeffs) significant(x, y int) bool {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return false
	}
	return c.sigState[c.at(x, y)]
}

// neighborCounts returns the significant horizontal, vertical, and
// diagonal neighbor counts around (x,y), used to select zero-coding and
// sign-coding contexts.
func (c *codeBlockCoeffs) neighborCounts(x, y int) (h, v, d int) {
	if c.significant(x-1, y) {
		h++
	}
	if c.significant(x+1, y) {
		h++
	}
	if c.significant(x, y-1) {
		v++
	}
	if c.significant(x, y+1) {
		v++
	}
	if c.significant(x-1, y-1) {
		d++
	}
	if c.significant(x+1, y-1) {
		d++
	}
	if c.significant(x-1, y+1) {
		d++
	}
	if c.significant(x+1, y+1) {
		d++
	}
	return
}

// zeroCodingContext selects the zero-coding context label for (x,y)
// given its subband orientation, per T.800 Table D.1.
func zeroCodingContext(h, v, d, orient int) uint8 {
	switch orient {
	case 0, 1: // LL: horizontal-dominant; HL (orient 1): same table with h and v swapped
		if orient == 1 {
			h, v = v, h
		}
		switch {
		case h == 2:
			return 8
		case h == 1 && v >= 1:
			return 7
		case h == 1 && v == 0 && d >= 1:
			return 6
		case h == 1 && v == 0 && d == 0:
			return 5
		case h == 0 && v == 2:
			return 4
		case h == 0 && v == 1:
			return 3
		case h == 0 && v == 0 && d >= 2:
			return 2
		case h == 0 && v == 0 && d == 1:
			return 1
		default:
			return 0
		}
	case 2: // LH: same table as LL; the vertical-dominant layout below is read with h and v swapped
		h, v = v, h
		switch {
		case v == 2:
			return 8
		case v == 1 && h >= 1:
			return 7
		case v == 1 && h == 0 && d >= 1:
			return 6
		case v == 1 && h == 0 && d == 0:
			return 5
		case v == 0 && h == 2:
			return 4
		case v == 0 && h == 1:
			return 3
		case v == 0 && h == 0 && d >= 2:
			return 2
		case v == 0 && h == 0 && d == 1:
			return 1
		default:
			return 0
		}
	default: // HH: diagonal-dominant
		hv := h + v
		switch {
		case d >= 3:
			return 8
		case d == 2 && hv >= 1:
			return 7
		case d == 2 && hv == 0:
			return 6
		case d == 1 && hv >= 2:
			return 5
		case d == 1 && hv == 1:
			return 4
		case d == 1 && hv == 0:
			return 3
		case d == 0 && hv >= 2:
			return 2
		case d == 0 && hv == 1:
			return 1
		default:
			return 0
		}
	}
}

func (c *codeBlockCoeffs) signContribution(x, y int) int {
	contrib := func(sig bool, neg bool) int {
		if !sig {
			return 0
		}
		if neg {
			return -1
		}
		return 1
	}
	hc := contrib(c.significant(x-1, y), c.significant(x-1, y) && c.sign[c.at(x-1, y)]) +
		contrib(c.significant(x+1, y), c.significant(x+1, y) && c.sign[c.at(x+1, y)])
	vc := contrib(c.significant(x, y-1), c.significant(x, y-1) && c.sign[c.at(x, y-1)]) +
		contrib(c.significant(x, y+1), c.significant(x, y+1) && c.sign[c.at(x, y+1)])
	if hc > 1 {
		hc = 1
	}
	if hc < -1 {
		hc = -1
	}
	if vc > 1 {
		vc = 1
	}
	if vc < -1 {
		vc = -1
	}
	return hc*3 + vc // combined into [-4,4], mapped by signContext below
}

// signContext maps the combined horizontal/vertical sign contribution to
// a (context label, expected-sign) pair per T.800 Table D.2.
func signContext(combined int) (uint8, bool) {
	// combined = 3*H + V; a negative value flips both contributions and the
	// expected sign, and the five labels 9..13 follow 3*|H| + V in order.
	if combined < 0 {
		return uint8(9 - combined), true
	}
	return uint8(9 + combined), false
}

// decodeSubbandPlane entropy-decodes every code-block in a subband and
// assembles its coefficient plane in natural (row-major) order.
func decodeSubbandPlane(g *codeBlockGrid, sb subband, maxBitplanes int) ([]int32, error) {
	plane := make([]int32, sb.width*sb.height)
	if maxBitplanes <= 0 {
		return plane, nil
	}

	for _, cb := range g.blocks {
		if !cb.included || cb.width <= 0 || cb.height <= 0 {
			continue
		}
		coeffs, err := decodeCodeBlock(cb, maxBitplanes)
		if err != nil {
			return nil, err
		}

		for y := 0; y < cb.height; y++ {
			for x := 0; x < cb.width; x++ {
				v := coeffs.mag[coeffs.at(x, y)]
				if coeffs.sign[coeffs.at(x, y)] {
					v = -v
				}
				px, py := cb.originX+x, cb.originY+y
				if px < sb.width && py < sb.height {
					plane[py*sb.width+px] = v
				}
			}
		}
	}

	return plane, nil
}

// decodeCodeBlock runs the EBCOT Tier-1 bit-plane passes (cleanup, then
// significance-propagation/magnitude-refinement/cleanup per subsequent
// plane) over one code-block's compressed segment.
func decodeCodeBlock(cb *codeBlockState, maxBitplanes int) (*codeBlockCoeffs, error) {
	if cb.width <= 0 || cb.height <= 0 {
		return nil, fmt.Errorf("code-block has zero extent")
	}
	coeffs := newCodeBlockCoeffs(cb.width, cb.height)

	startPlane := maxBitplanes - cb.zeroBitplanes - 1
	if startPlane < 0 {
		return coeffs, nil
	}

	dec := newMQDecoder(cb.data)
	// Initial context states per T.800 Table D.7: the "no significant
	// neighbors" zero-coding context and the run-length context start
	// away from state 0, and the uniform context is pinned to the
	// fixed-probability state used for bypass-like coding.
	contexts := make([]mqContext, numContexts)
	contexts[0] = mqContext{index: 4, mps: 0}
	contexts[ctxRunLength] = mqContext{index: 3, mps: 0}
	contexts[ctxUniform] = mqContext{index: 46, mps: 0}

	passesLeft := cb.numPasses
	plane := startPlane
	firstPass := true
	for passesLeft > 0 && plane >= 0 {
		if firstPass {
			runCleanupPass(dec, contexts, coeffs, plane, cb.orient())
			passesLeft--
			firstPass = false
		} else {
			if passesLeft > 0 {
				runSignificancePropagationPass(dec, contexts, coeffs, plane, cb.orient())
				passesLeft--
			}
			if passesLeft > 0 {
				runMagnitudeRefinementPass(dec, contexts, coeffs, plane)
				passesLeft--
			}
			if passesLeft > 0 {
				runCleanupPass(dec, contexts, coeffs, plane, cb.orient())
				passesLeft--
			}
		}
		plane--
	}

	return coeffs, nil
}

// orient reports the code-block's subband orientation, needed to select
// the right zero-coding context table.
func (cb *codeBlockState) orient() int { return cb.orientHint }
