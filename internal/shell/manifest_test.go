package shell

import "testing"

func TestPrecacheManifest(t *testing.T) {
	manifest := PrecacheManifest()

	if manifest.CacheName != "stockalert-v1" {
		t.Fatalf("unexpected cache name %q", manifest.CacheName)
	}
	if manifest.Fallback != "/index.html" {
		t.Fatalf("unexpected fallback %q", manifest.Fallback)
	}

	want := []string{"/", "/index.html", "/manifest.json", "/logo192.png", "/logo512.png", "/favicon.ico"}
	if len(manifest.Precache) != len(want) {
		t.Fatalf("expected %d precache urls, got %d", len(want), len(manifest.Precache))
	}
	for i, url := range want {
		if manifest.Precache[i] != url {
			t.Fatalf("precache[%d] = %q, want %q", i, manifest.Precache[i], url)
		}
	}
}

func TestPrecacheManifestReturnsACopy(t *testing.T) {
	first := PrecacheManifest()
	first.Precache[0] = "/tampered"

	second := PrecacheManifest()
	if second.Precache[0] != "/" {
		t.Fatal("mutating a returned manifest must not leak into the canonical list")
	}
}
