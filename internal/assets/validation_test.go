package assets

import (
	"errors"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		// Valid names
		{name: "simple name", input: "default"},
		{name: "name with hyphen", input: "my-style"},
		{name: "name with underscore", input: "my_style"},
		{name: "mixed case", input: "MyStyle"},

		// Invalid names
		{name: "empty name", input: "", wantErr: ErrInvalidAssetName},
		{name: "forward slash", input: "path/to/style", wantErr: ErrInvalidAssetName},
		{name: "backslash", input: "path\\to\\style", wantErr: ErrInvalidAssetName},
		{name: "parent traversal", input: "..", wantErr: ErrInvalidAssetName},
		{name: "extension", input: "default.css", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAssetName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateStaticName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		wantErr error
	}{
		{input: "lightbox.css"},
		{input: "lightbox.js"},
		{input: "", wantErr: ErrInvalidAssetName},
		{input: "../lightbox.js", wantErr: ErrInvalidAssetName},
		{input: "sub\\lightbox.js", wantErr: ErrInvalidAssetName},
		{input: ".hidden", wantErr: ErrInvalidAssetName},
		{input: "..", wantErr: ErrInvalidAssetName},
		{input: "a\x00b", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			err := ValidateStaticName(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateStaticName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
