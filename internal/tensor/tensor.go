// Package tensor lays out token-id batches as flat, fixed-shape numeric
// buffers suitable for feeding a text encoder.
package tensor

import (
	"fmt"
	"math"
)

type DType string

const (
	DTypeInt32 DType = "int32"
	DTypeInt64 DType = "int64"
)

// Tensor is an immutable flat buffer with an explicit shape.
type Tensor struct {
	dtype DType
	shape []int64
	data  any
}

func New[T ~int32 | ~int64](data []T, shape []int64) (*Tensor, error) {
	dtype, err := dtypeOf(data)
	if err != nil {
		return nil, err
	}
	count, err := elementCount(shape)
	if err != nil {
		return nil, err
	}
	if count != len(data) {
		return nil, fmt.Errorf("shape %v expects %d elements, got %d", shape, count, len(data))
	}

	t := &Tensor{
		dtype: dtype,
		shape: append([]int64(nil), shape...),
	}
	switch dtype {
	case DTypeInt32:
		converted := make([]int32, len(data))
		for i, v := range data {
			converted[i] = int32(v)
		}
		t.data = converted
	case DTypeInt64:
		converted := make([]int64, len(data))
		for i, v := range data {
			converted[i] = int64(v)
		}
		t.data = converted
	}
	return t, nil
}

// PackRows writes each row into a pre-zeroed [len(rows), width] int32 buffer.
// Rows shorter than width are zero-padded; rows longer than width are
// rejected, the caller is responsible for truncation.
func PackRows(rows [][]int32, width int) (*Tensor, error) {
	if width < 1 {
		return nil, fmt.Errorf("pack width %d is not positive", width)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty batch")
	}

	data := make([]int32, len(rows)*width)
	for i, row := range rows {
		if len(row) > width {
			return nil, fmt.Errorf("row %d has %d elements, exceeds width %d", i, len(row), width)
		}
		copy(data[i*width:(i+1)*width], row)
	}
	return New(data, []int64{int64(len(rows)), int64(width)})
}

func (t *Tensor) DType() DType {
	return t.dtype
}

func (t *Tensor) Shape() []int64 {
	return append([]int64(nil), t.shape...)
}

// Data returns a copy of the backing buffer.
func (t *Tensor) Data() any {
	switch v := t.data.(type) {
	case []int32:
		return append([]int32(nil), v...)
	case []int64:
		return append([]int64(nil), v...)
	default:
		return nil
	}
}

// Int32s returns the backing buffer of an int32 tensor.
func (t *Tensor) Int32s() ([]int32, error) {
	data, ok := t.data.([]int32)
	if !ok {
		return nil, fmt.Errorf("expected int32 tensor, got %s", t.dtype)
	}
	return append([]int32(nil), data...), nil
}

// Row returns a copy of row i of a 2-D int32 tensor.
func (t *Tensor) Row(i int) ([]int32, error) {
	if len(t.shape) != 2 {
		return nil, fmt.Errorf("Row requires a 2D tensor, got %dD", len(t.shape))
	}
	if i < 0 || int64(i) >= t.shape[0] {
		return nil, fmt.Errorf("row %d out of range [0, %d)", i, t.shape[0])
	}
	data, ok := t.data.([]int32)
	if !ok {
		return nil, fmt.Errorf("expected int32 tensor, got %s", t.dtype)
	}
	width := int(t.shape[1])
	return append([]int32(nil), data[i*width:(i+1)*width]...), nil
}

func dtypeOf[T ~int32 | ~int64](data []T) (DType, error) {
	var zero T
	switch any(zero).(type) {
	case int32:
		return DTypeInt32, nil
	case int64:
		return DTypeInt64, nil
	default:
		return "", fmt.Errorf("unsupported tensor data type %T", zero)
	}
}

func elementCount(shape []int64) (int, error) {
	if len(shape) == 0 {
		return 1, nil
	}
	count := int64(1)
	for i, dim := range shape {
		if dim < 1 {
			return 0, fmt.Errorf("shape[%d]=%d is not positive", i, dim)
		}
		if count > math.MaxInt64/dim {
			return 0, fmt.Errorf("shape %v overflows element count", shape)
		}
		count *= dim
	}
	if count > int64(math.MaxInt) {
		return 0, fmt.Errorf("shape %v exceeds platform int capacity", shape)
	}
	return int(count), nil
}
