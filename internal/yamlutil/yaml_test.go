package yamlutil

import (
	"errors"
	"strings"
	"testing"
)

type sample struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	t.Run("known fields decode", func(t *testing.T) {
		t.Parallel()

		var got sample
		if err := UnmarshalStrict([]byte("name: test\ncount: 3\n"), &got); err != nil {
			t.Fatalf("UnmarshalStrict() error = %v", err)
		}
		if got.Name != "test" || got.Count != 3 {
			t.Errorf("got %+v, want {test 3}", got)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()

		var got sample
		if err := UnmarshalStrict([]byte("bogus: x\n"), &got); err == nil {
			t.Error("UnmarshalStrict() should reject unknown fields")
		}
	})
}

func TestUnmarshalStrictValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
	}{
		{"nil data", nil, &sample{}, ErrEmptyInput},
		{"empty data", []byte{}, &sample{}, ErrEmptyInput},
		{"nil destination", []byte("name: x"), nil, ErrNilDestination},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := UnmarshalStrict(tt.data, tt.dest); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUnmarshalStrictInputTooLarge(t *testing.T) {
	t.Parallel()

	data := []byte("name: " + strings.Repeat("x", MaxInputSize))
	if err := UnmarshalStrict(data, &sample{}); !errors.Is(err, ErrInputTooLarge) {
		t.Errorf("error = %v, want ErrInputTooLarge", err)
	}
}
