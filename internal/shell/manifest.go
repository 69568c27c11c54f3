package shell

// CacheName versions the UI shell cache; bump it to invalidate every
// precached asset at once.
const CacheName = "stockalert-v1"

// Fallback is served when neither the cache nor the network can answer a
// navigation request.
const Fallback = "/index.html"

// Manifest is the asset list the caching layer stores at install time so the
// shell stays retrievable offline.
type Manifest struct {
	CacheName string   `json:"cache_name"`
	Precache  []string `json:"precache"`
	Fallback  string   `json:"fallback"`
}

var precacheURLs = []string{
	"/",
	"/index.html",
	"/manifest.json",
	"/logo192.png",
	"/logo512.png",
	"/favicon.ico",
}

// PrecacheManifest returns the current shell manifest. The slice is a copy;
// callers may not grow or reorder the canonical list.
func PrecacheManifest() Manifest {
	precache := make([]string, len(precacheURLs))
	copy(precache, precacheURLs)
	return Manifest{
		CacheName: CacheName,
		Precache:  precache,
		Fallback:  Fallback,
	}
}
