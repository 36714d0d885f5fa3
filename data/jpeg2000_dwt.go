package data

// inverse1D53 reconstructs one row or column of samples from its
// low-pass and high-pass reversible-5/3 subband coefficients (T.800
// Annex F.3.2, synthesis direction), using symmetric edge extension for
// the out-of-range neighbor references the lifting steps need.
func inverse1D53(lowVals, highVals []int32) []int32 {
	n := len(lowVals) + len(highVals)
	if n == 0 {
		return nil
	}

	s := make([]int32, len(lowVals))
	copy(s, lowVals)
	d := make([]int32, len(highVals))
	copy(d, highVals)

	get := func(arr []int32, i int) int32 {
		if len(arr) == 0 {
			return 0
		}
		if i < 0 {
			i = 0
		}
		if i >= len(arr) {
			i = len(arr) - 1
		}
		return arr[i]
	}

	for i := range s {
		s[i] -= (get(d, i-1) + get(d, i) + 2) >> 2
	}
	for i := range d {
		d[i] += (get(s, i) + get(s, i+1)) >> 1
	}

	out := make([]int32, n)
	for i, v := range s {
		out[2*i] = v
	}
	for i, v := range d {
		out[2*i+1] = v
	}
	return out
}

// inverseDWT53 merges one decomposition level's four subbands (LL at the
// coarser resolution, plus this level's HL/LH/HH) into the next, higher
// resolution's reconstructed plane.
func inverseDWT53(ll []int32, llW, llH int, hl, lh, hh []int32, hW, hH int) []int32 {
	fullW, fullH := llW+hW, llH+hH
	if fullW == 0 || fullH == 0 {
		return nil
	}

	lBand := make([]int32, llW*fullH)
	for x := 0; x < llW; x++ {
		lowCol := make([]int32, llH)
		for y := 0; y < llH; y++ {
			lowCol[y] = ll[y*llW+x]
		}
		highCol := make([]int32, hH)
		for y := 0; y < hH; y++ {
			highCol[y] = lh[y*llW+x]
		}
		merged := inverse1D53(lowCol, highCol)
		for y := 0; y < fullH; y++ {
			lBand[y*llW+x] = merged[y]
		}
	}

	hBand := make([]int32, hW*fullH)
	for x := 0; x < hW; x++ {
		lowCol := make([]int32, llH)
		for y := 0; y < llH; y++ {
			lowCol[y] = hl[y*hW+x]
		}
		highCol := make([]int32, hH)
		for y := 0; y < hH; y++ {
			highCol[y] = hh[y*hW+x]
		}
		merged := inverse1D53(lowCol, highCol)
		for y := 0; y < fullH; y++ {
			hBand[y*hW+x] = merged[y]
		}
	}

	out := make([]int32, fullW*fullH)
	for y := 0; y < fullH; y++ {
		lowRow := lBand[y*llW : y*llW+llW]
		highRow := hBand[y*hW : y*hW+hW]
		merged := inverse1D53(lowRow, highRow)
		copy(out[y*fullW:y*fullW+fullW], merged)
	}

	return out
}
