package cli

import (
	"encoding/json"
	"testing"
)

const releasesJSON = `[
	{"tag_name": "v0.2.0", "draft": true, "assets": [{"name": "tpaint_linux_amd64", "browser_download_url": "https://example.com/draft"}]},
	{"tag_name": "v0.3.0-rc1", "prerelease": true},
	{"tag_name": "release-0.1.5", "assets": [
		{"name": "checksums.txt", "browser_download_url": "https://example.com/sums"},
		{"name": "tpaint_linux_amd64.tar.gz", "browser_download_url": "https://example.com/0.1.5"}
	]},
	{"tag_name": "nightly", "name": "tpaint 0.1.7"},
	{"tag_name": "latest"}
]`

func TestPickLatestRelease(t *testing.T) {
	var releases []githubRelease
	if err := json.Unmarshal([]byte(releasesJSON), &releases); err != nil {
		t.Fatal(err)
	}
	got := pickLatestRelease(releases)
	if got == nil {
		t.Fatalf("no release picked")
	}
	// drafts and prereleases are skipped; the name is used when the tag has no version
	if got.Version.String() != "0.1.7" || got.AssetURL != "" {
		t.Fatalf("picked %s %q", got.Version, got.AssetURL)
	}

	got = pickLatestRelease(releases[:3])
	if got.Version.String() != "0.1.5" || got.AssetURL != "https://example.com/0.1.5" {
		t.Fatalf("picked %s %q", got.Version, got.AssetURL)
	}

	if pickLatestRelease(releases[4:]) != nil {
		t.Fatalf("picked a release without a version")
	}
}
