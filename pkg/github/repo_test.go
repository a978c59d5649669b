package github

import (
	"testing"
)

func TestParseRepo(t *testing.T) {
	tests := []struct {
		name      string
		repo      string
		wantOwner string
		wantName  string
		wantErr   bool
	}{
		{
			name:      "simple owner/name",
			repo:      "kubernetes/test-infra",
			wantOwner: "kubernetes",
			wantName:  "test-infra",
			wantErr:   false,
		},
		{
			name:      "dots and dashes",
			repo:      "openshift-eng/ocp-build-data.v2",
			wantOwner: "openshift-eng",
			wantName:  "ocp-build-data.v2",
			wantErr:   false,
		},
		{
			name:      "surrounding whitespace trimmed",
			repo:      "  acme/widgets  ",
			wantOwner: "acme",
			wantName:  "widgets",
			wantErr:   false,
		},
		{
			name:    "missing slash",
			repo:    "just-a-name",
			wantErr: true,
		},
		{
			name:    "too many segments",
			repo:    "a/b/c",
			wantErr: true,
		},
		{
			name:    "empty string",
			repo:    "",
			wantErr: true,
		},
		{
			name:    "empty owner",
			repo:    "/widgets",
			wantErr: true,
		},
		{
			name:    "empty name",
			repo:    "acme/",
			wantErr: true,
		},
		{
			name:    "whitespace inside",
			repo:    "acme/wid gets",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, name, err := ParseRepo(tt.repo)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseRepo() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				if owner != tt.wantOwner {
					t.Errorf("ParseRepo() owner = %v, want %v", owner, tt.wantOwner)
				}
				if name != tt.wantName {
					t.Errorf("ParseRepo() name = %v, want %v", name, tt.wantName)
				}
			}
		})
	}
}
