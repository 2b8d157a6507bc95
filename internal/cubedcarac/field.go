package cubedcarac

import "fmt"

// Field is a dense rows×cols scalar array in row-major order.
type Field struct {
	Rows, Cols int
	Data       []Real // flat: i*Cols + j
}

// NewField allocates a zero-initialized field.
func NewField(rows, cols int) *Field {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("field shape must be positive, got %dx%d", rows, cols))
	}
	return &Field{Rows: rows, Cols: cols, Data: make([]Real, rows*cols)}
}

func (f *Field) idx(i, j int) int { return i*f.Cols + j }

func (f *Field) At(i, j int) Real     { return f.Data[f.idx(i, j)] }
func (f *Field) Set(i, j int, v Real) { f.Data[f.idx(i, j)] = v }

// Shape returns (rows, cols).
func (f *Field) Shape() (int, int) { return f.Rows, f.Cols }

// Flatten returns a copy of the row-major data.
func (f *Field) Flatten() []Real {
	out := make([]Real, len(f.Data))
	copy(out, f.Data)
	return out
}

// Map returns a new field with fn applied to every entry.
func (f *Field) Map(fn func(Real) Real) *Field {
	out := &Field{Rows: f.Rows, Cols: f.Cols, Data: make([]Real, len(f.Data))}
	for k, v := range f.Data {
		out.Data[k] = fn(v)
	}
	return out
}

// Scaled returns a new field with every entry multiplied by s.
func (f *Field) Scaled(s Real) *Field {
	return f.Map(func(v Real) Real { return v * s })
}
