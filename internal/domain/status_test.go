package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "empty defaults to pendente", in: "", want: StatusPendente},
		{name: "whitespace defaults to pendente", in: "   ", want: StatusPendente},
		{name: "valid value", in: "concluida", want: StatusConcluida},
		{name: "uppercase is canonicalized", in: "PENDENTE", want: StatusPendente},
		{name: "surrounding space is trimmed", in: "  em_andamento  ", want: StatusEmAndamento},
		{name: "unknown value fails", in: "bogus", wantErr: true},
		{name: "alias is not a status", in: "all", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeStatus(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeStatusFilter(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "empty means no filter", in: "", want: ""},
		{name: "all alias", in: "all", want: ""},
		{name: "todas alias", in: "todas", want: ""},
		{name: "uppercase alias", in: "TODOS", want: ""},
		{name: "concrete status", in: "pendente", want: StatusPendente},
		{name: "trimmed uppercase status", in: " Concluida ", want: StatusConcluida},
		{name: "unknown value fails", in: "bogus", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeStatusFilter(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Normalization is idempotent: feeding a canonical value back in returns
// it unchanged.
func TestNormalizeStatusIdempotent(t *testing.T) {
	for _, in := range []string{"", "  PENDENTE ", "em_andamento", "Concluida"} {
		first, err := NormalizeStatus(in)
		require.NoError(t, err)
		second, err := NormalizeStatus(first)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestInvalidStatusErrorEnumeratesSortedValues(t *testing.T) {
	_, err := NormalizeStatus("bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "concluida, em_andamento, pendente")
	assert.Contains(t, err.Error(), "bogus")
}

func TestValidStatusesSorted(t *testing.T) {
	assert.Equal(t, []string{"concluida", "em_andamento", "pendente"}, ValidStatuses())
}
