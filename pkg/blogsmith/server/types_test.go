package server

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestGenerateRequest_Validate covers the request bounds, counted in
// runes rather than bytes.
func TestGenerateRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     GenerateRequest
		wantErr string
	}{
		{
			name: "valid minimal",
			req:  GenerateRequest{Topic: "abc"},
		},
		{
			name: "valid full",
			req: GenerateRequest{
				Topic:          "Remote Work",
				Transcript:     strings.Repeat("x", 50000),
				TargetLanguage: "Spanish",
				Style:          "casual",
			},
		},
		{
			name:    "topic too short",
			req:     GenerateRequest{Topic: "ab"},
			wantErr: "at least 3",
		},
		{
			name:    "topic whitespace only",
			req:     GenerateRequest{Topic: "     "},
			wantErr: "at least 3",
		},
		{
			name:    "topic padded below minimum",
			req:     GenerateRequest{Topic: "  ab  "},
			wantErr: "at least 3",
		},
		{
			name: "topic at upper bound",
			req:  GenerateRequest{Topic: strings.Repeat("x", 500)},
		},
		{
			name:    "topic over upper bound",
			req:     GenerateRequest{Topic: strings.Repeat("x", 501)},
			wantErr: "at most 500",
		},
		{
			name: "multibyte topic counted in runes",
			req:  GenerateRequest{Topic: strings.Repeat("日", 500)},
		},
		{
			name:    "transcript over bound",
			req:     GenerateRequest{Topic: "Remote Work", Transcript: strings.Repeat("x", 50001)},
			wantErr: "at most 50000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
