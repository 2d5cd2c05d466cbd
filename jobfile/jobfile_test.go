package jobfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crawlkit/jobident/jobid"
)

const sampleFile = `prefix: crawler-2
jobs:
  - name: iphone-on-x
    keyword: iphone air
    platform: x
    label: null
    post_start_datetime: "2025-09-16T03:22:05.23181Z"
    post_end_datetime: "2025-12-15T03:22:05.23181Z"
  - name: apple-tag
    keyword: iphone air
    platform: x
    label: "#Apple"
`

func TestParseSampleFile(t *testing.T) {
	f, err := Parse([]byte(sampleFile))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if f.Prefix != "crawler-2" {
		t.Errorf("prefix = %q", f.Prefix)
	}
	if len(f.Jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(f.Jobs))
	}

	first := f.Jobs[0]
	if first.Keyword.Value() != "iphone air" {
		t.Errorf("keyword = %q", first.Keyword.Value())
	}
	if first.Label.Present() {
		t.Error("explicit null label decoded as present")
	}
	if first.PostEndDatetime.Value() != "2025-12-15T03:22:05.23181Z" {
		t.Errorf("post_end_datetime = %q", first.PostEndDatetime.Value())
	}

	// Second definition omits the datetime keys entirely.
	second := f.Jobs[1]
	if second.PostStartDatetime.Present() || second.PostEndDatetime.Present() {
		t.Error("omitted datetime keys decoded as present")
	}
	if second.Label.Value() != "#Apple" {
		t.Errorf("label = %q", second.Label.Value())
	}
}

func TestIDsMatchDirectDerivation(t *testing.T) {
	f, err := Parse([]byte(sampleFile))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	ids := f.IDs()
	if len(ids) != 2 {
		t.Fatalf("got %d ids, want 2", len(ids))
	}

	// The fixture definition carries the golden fixture parameters.
	if got := ids["iphone-on-x"]; got != "crawler-2-1ebf06cf6f5c2e5b" {
		t.Errorf("iphone-on-x id = %q", got)
	}

	for _, d := range f.Jobs {
		want := jobid.Derive(d.Params(), f.Prefix)
		if ids[d.Name] != want {
			t.Errorf("id for %q = %q, want %q", d.Name, ids[d.Name], want)
		}
	}
}

func TestLoadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	if err := os.WriteFile(path, []byte(sampleFile), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(f.Jobs) != 2 {
		t.Errorf("got %d jobs", len(f.Jobs))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unsafe prefix",
			yaml:    "prefix: jobs/daily\njobs:\n  - name: a\n",
			wantErr: "path separator",
		},
		{
			name:    "prefix too long",
			yaml:    "prefix: " + strings.Repeat("p", 64) + "\njobs: []\n",
			wantErr: "too long",
		},
		{
			name:    "unnamed job",
			yaml:    "prefix: job\njobs:\n  - keyword: x\n",
			wantErr: "no name",
		},
		{
			name:    "duplicate names",
			yaml:    "prefix: job\njobs:\n  - name: a\n  - name: a\n",
			wantErr: "duplicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
