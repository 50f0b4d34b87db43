package scalar

import (
	"testing"
	"time"

	"github.com/soapbind-project/soapbind-go/pkg/xsd"
)

func TestEncode(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		value   any
		want    string
		wantErr bool
	}{
		{
			name:  "string",
			value: "hello",
			want:  "hello",
		},
		{
			name:  "int",
			value: 42,
			want:  "42",
		},
		{
			name:  "int64",
			value: int64(-7),
			want:  "-7",
		},
		{
			name:  "uint",
			value: uint(9),
			want:  "9",
		},
		{
			name:  "bool",
			value: true,
			want:  "true",
		},
		{
			name:  "float64",
			value: 3.25,
			want:  "3.25",
		},
		{
			name:  "time",
			value: created,
			want:  "2024-03-01T12:30:00Z",
		},
		{
			name:  "bytes",
			value: []byte("soap"),
			want:  "c29hcA==",
		},
		{
			name:  "nil",
			value: nil,
			want:  "",
		},
		{
			name:    "unsupported",
			value:   struct{}{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Encode() expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		kind    xsd.ScalarKind
		want    any
		wantErr bool
	}{
		{
			name: "integer",
			text: "42",
			kind: xsd.KindInteger,
			want: int64(42),
		},
		{
			name: "integer with whitespace",
			text: " 42 ",
			kind: xsd.KindInteger,
			want: int64(42),
		},
		{
			name:    "bad integer",
			text:    "forty-two",
			kind:    xsd.KindInteger,
			wantErr: true,
		},
		{
			name: "decimal",
			text: "3.25",
			kind: xsd.KindDecimal,
			want: 3.25,
		},
		{
			name: "boolean true",
			text: "true",
			kind: xsd.KindBoolean,
			want: true,
		},
		{
			name: "boolean numeric",
			text: "1",
			kind: xsd.KindBoolean,
			want: true,
		},
		{
			name: "string stays string",
			text: "hello",
			kind: xsd.KindString,
			want: "hello",
		},
		{
			name: "date stays lexical",
			text: "2024-03-01",
			kind: xsd.KindDate,
			want: "2024-03-01",
		},
		{
			name: "empty integer is nil",
			text: "",
			kind: xsd.KindInteger,
			want: nil,
		},
		{
			name: "empty string stays empty",
			text: "",
			kind: xsd.KindString,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.text, tt.kind)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Decode() expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode() = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestDecodeBase64(t *testing.T) {
	got, err := Decode("c29hcA==", xsd.KindBase64)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if string(got.([]byte)) != "soap" {
		t.Errorf("Decode() = %q, want %q", got, "soap")
	}
}
