package assets

import "embed"

// ManifestFile is the manifest path inside Files.
const ManifestFile = "manifest.yaml"

//go:embed manifest.yaml sheets/*.txt
var Files embed.FS

// Default loads the embedded assets into a new registry.
func Default() (*Registry, error) {
	r := NewRegistry()
	if err := r.Load(Files, ManifestFile); err != nil {
		return nil, err
	}
	return r, nil
}
