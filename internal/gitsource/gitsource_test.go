package gitsource

import (
	"path/filepath"
	"testing"
)

func TestLocalPath(t *testing.T) {
	testCases := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "https URL",
			url:  "https://github.com/someone/decks.git",
			want: filepath.Join("repos", "github.com", "someone", "decks"),
		},
		{
			name: "https URL without .git",
			url:  "https://github.com/someone/decks",
			want: filepath.Join("repos", "github.com", "someone", "decks"),
		},
		{
			name: "scp style",
			url:  "git@github.com:someone/decks.git",
			want: filepath.Join("repos", "github.com", "someone", "decks"),
		},
		{
			name:    "unparseable",
			url:     "not a url at all",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := LocalPath("repos", tc.url)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected an error for %q, got path %q", tc.url, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("LocalPath(%q) returned an unexpected error: %v", tc.url, err)
			}
			if got != tc.want {
				t.Errorf("LocalPath(%q) = %q, want %q", tc.url, got, tc.want)
			}
		})
	}
}

func TestIsGitURL(t *testing.T) {
	gitURLs := []string{
		"https://github.com/someone/decks.git",
		"git@github.com:someone/decks.git",
		"/local/path/ending/in.git",
		"http://example.com/decks",
	}
	for _, u := range gitURLs {
		if !IsGitURL(u) {
			t.Errorf("expected %q to be treated as a git URL", u)
		}
	}

	localPaths := []string{"/home/me/decks", "decks", "./relative"}
	for _, p := range localPaths {
		if IsGitURL(p) {
			t.Errorf("expected %q to be treated as a local path", p)
		}
	}
}
