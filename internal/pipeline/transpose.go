// File: internal/pipeline/transpose.go
// Author: momentics <momentics@gmail.com>
//
// Transpose reinterprets a decoded data half as a batchSize x elemWidth
// row-major matrix and rewrites it column-major in place, so consumers
// get a channel-major / feature-major layout for GEMM-style kernels.
// Grounded on the original Matrix<char>::transpose call in loader.hpp,
// whose own TODO ("needs to be aware of the underlying data type's
// size") is resolved here by parameterizing on elemSize: the transpose
// unit is a run of elemSize bytes, not a single byte, so wider decoded
// elements (float16/float32 datums) transpose correctly.

package pipeline

// Transpose rewrites data, read as [rows x cols] elements of elemSize
// bytes each, into [cols x rows] order. len(data) must equal
// rows*cols*elemSize.
func Transpose(data []byte, rows, cols, elemSize int) {
	if rows <= 1 || cols <= 1 || elemSize <= 0 {
		return
	}
	n := rows * cols * elemSize
	if len(data) != n {
		panic("pipeline: transpose size mismatch")
	}
	out := make([]byte, n)
	for r := 0; r < rows; r++ {
		rowOff := r * cols * elemSize
		for c := 0; c < cols; c++ {
			src := data[rowOff+c*elemSize : rowOff+(c+1)*elemSize]
			dstOff := (c*rows + r) * elemSize
			copy(out[dstOff:dstOff+elemSize], src)
		}
	}
	copy(data, out)
}
