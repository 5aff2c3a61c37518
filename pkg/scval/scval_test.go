package scval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    Val
		wantErr bool
	}{
		{"String becomes symbol", "create_project", Val{Type: TypeSymbol, Value: "create_project"}, false},
		{"AccountID becomes address", AccountID("GABCD"), Val{Type: TypeAddress, Value: "GABCD"}, false},
		{"Uint64 becomes u64", uint64(1000), Val{Type: TypeU64, Value: "1000"}, false},
		{"Int becomes u64", 42, Val{Type: TypeU64, Value: "42"}, false},
		{"Uint32 becomes u32", uint32(3), Val{Type: TypeU32, Value: "3"}, false},
		{"Bool", true, Val{Type: TypeBool, Value: "true"}, false},
		{"Negative int fails fast", -1, Val{}, true},
		{"Unsupported type fails fast", 3.14, Val{}, true},
		{"Struct fails fast", struct{}{}, Val{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := From(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnsupportedType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValPassthrough(t *testing.T) {
	// 已经打好标签的值原样通过
	v := I128("170141183460469231731687303715884105727")
	got, err := From(v)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}
