package cubedcarac

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResolution(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{name: "valid", in: "10", want: 10},
		{name: "smallest", in: " 2 ", want: 2},
		{name: "missing", in: "", wantErr: true},
		{name: "not an integer", in: "3.5", wantErr: true},
		{name: "words", in: "ten", wantErr: true},
		{name: "one", in: "1", wantErr: true},
		{name: "negative", in: "-4", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ParseResolution(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidResolution))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestNumericDomainErrorMessage(t *testing.T) {
	e := &NumericDomainError{I: 1, J: 2, Kind: KindArea, Value: -0.5}
	assert.Contains(t, e.Error(), "cell (1, 2)")
	assert.Contains(t, e.Error(), "radicand")
	e = &NumericDomainError{I: 3, J: 4, Kind: KindEllipticity}
	assert.Contains(t, e.Error(), "diagonal")
}
