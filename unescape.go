package zcsv

// unescapeInPlace collapses every doubled-quote escape ("qq") in data to a
// single quote byte, writing the result back into data's own backing array
// and returning the (possibly shorter) prefix slice. It never allocates and
// never lengthens the input.
//
// Grounded on the same scan-and-collapse shape as appendContentWithTransform
// in the original record builder, adapted to write through the read
// cursor's own backing array instead of appending into a side buffer, since
// the write cursor never runs ahead of the read cursor.
//
// A lone trailing quote (an odd run) is copied verbatim rather than
// dropped: validated input never produces one, but the routine is defined
// for arbitrary input.
func unescapeInPlace(data []byte, quote byte) []byte {
	w := 0
	for r := 0; r < len(data); r++ {
		if data[r] == quote && r+1 < len(data) && data[r+1] == quote {
			data[w] = quote
			w++
			r++
			continue
		}
		data[w] = data[r]
		w++
	}
	return data[:w]
}
