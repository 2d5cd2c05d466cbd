package jobid

import (
	"errors"
	"regexp"
	"strings"
	"testing"
)

func TestFormatID(t *testing.T) {
	digest := "1ebf06cf6f5c2e5b331eaf28773800b1"

	tests := []struct {
		name        string
		prefix      string
		maxLen      int
		digestChars int
		want        string
	}{
		{
			name:        "short prefix keeps full digest prefix",
			prefix:      "job",
			maxLen:      80,
			digestChars: 16,
			want:        "job-1ebf06cf6f5c2e5b",
		},
		{
			name:        "digestChars capped at digest length",
			prefix:      "job",
			maxLen:      80,
			digestChars: 64,
			want:        "job-" + digest,
		},
		{
			name:        "long prefix truncates into the digest",
			prefix:      strings.Repeat("p", 70),
			maxLen:      80,
			digestChars: 16,
			want:        strings.Repeat("p", 70) + "-" + digest[:9],
		},
		{
			name:        "pathological prefix truncates away digest and separator",
			prefix:      strings.Repeat("p", 90),
			maxLen:      80,
			digestChars: 16,
			want:        strings.Repeat("p", 80),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatID(tt.prefix, digest, tt.maxLen, tt.digestChars)
			if got != tt.want {
				t.Errorf("FormatID() = %q, want %q", got, tt.want)
			}
			if len(got) > tt.maxLen {
				t.Errorf("length %d exceeds cap %d", len(got), tt.maxLen)
			}
		})
	}
}

func TestDeriveOutputFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^job-[0-9a-f]{16}$`)

	params := []Params{
		{},
		{Keyword: Set("test"), Platform: Set("x")},
		fixtureParams(),
	}

	for _, p := range params {
		id := Derive(p, "job")

		if !pattern.MatchString(id) {
			t.Errorf("identifier %q does not match ^job-[0-9a-f]{16}$", id)
		}
		if strings.ContainsAny(id, `/\`) {
			t.Errorf("identifier %q contains a path separator", id)
		}
		if len(id) > MaxLength {
			t.Errorf("identifier %q exceeds %d characters", id, MaxLength)
		}
	}
}

func TestCheckPrefix(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		wantErr error
	}{
		{"simple", "job", nil},
		{"with dash", "crawler-2", nil},
		{"empty", "", nil},
		{"longest allowed", strings.Repeat("p", MaxPrefixLength), nil},
		{"one over", strings.Repeat("p", MaxPrefixLength+1), ErrPrefixTooLong},
		{"forward slash", "jobs/daily", ErrUnsafePrefix},
		{"backslash", `jobs\daily`, ErrUnsafePrefix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPrefix(tt.prefix)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("CheckPrefix(%q) = %v, want nil", tt.prefix, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckPrefix(%q) = %v, want %v", tt.prefix, err, tt.wantErr)
			}
		})
	}
}

func TestCheckPrefixBoundMatchesFormat(t *testing.T) {
	// A prefix at the documented ceiling must still yield an identifier
	// carrying the full digest prefix.
	prefix := strings.Repeat("p", MaxPrefixLength)
	if err := CheckPrefix(prefix); err != nil {
		t.Fatalf("ceiling prefix rejected: %v", err)
	}

	id := Derive(Params{}, prefix)
	if len(id) != MaxLength {
		t.Errorf("identifier length %d, want exactly %d", len(id), MaxLength)
	}
	if !strings.HasPrefix(id, prefix+"-") {
		t.Errorf("identifier %q lost its separator", id)
	}
	if got := len(id) - len(prefix) - 1; got != DigestChars {
		t.Errorf("identifier keeps %d digest characters, want %d", got, DigestChars)
	}
}
