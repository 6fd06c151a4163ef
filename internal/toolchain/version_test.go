package toolchain

import (
	"testing"

	"github.com/Masterminds/semver/v3"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    string
		wantErr bool
	}{
		{"three parts", "Meteor 1.8.1\n", "1.8.1", false},
		{"four parts", "Meteor 1.8.0.2\n", "1.8.0", false},
		{"two parts", "Meteor 2.3\n", "2.3.0", false},
		{"with banner", "Some notice\nMeteor 2.13.3\n", "2.13.3", false},
		{"garbage", "command not found", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseVersion(tt.output)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v.String() != tt.want {
				t.Errorf("ParseVersion() = %s, want %s", v, tt.want)
			}
		})
	}
}

func TestSatisfies(t *testing.T) {
	tests := []struct {
		version    string
		constraint string
		want       bool
		wantErr    bool
	}{
		{"1.8.0", "1.8.0", true, false},
		{"1.9.0", "1.8.0", true, false},
		{"1.6.1", "1.8.0", false, false},
		{"2.13.3", ">= 2.0, < 3.0", true, false},
		{"3.0.0", ">= 2.0, < 3.0", false, false},
		{"1.8.0", "not a constraint", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.version+" "+tt.constraint, func(t *testing.T) {
			got, err := Satisfies(semver.MustParse(tt.version), tt.constraint)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Satisfies() = %v, want %v", got, tt.want)
			}
		})
	}
}
