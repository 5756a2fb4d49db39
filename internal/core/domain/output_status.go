package domain

// OutputStatus describes what a recorded artifact file looks like on disk.
type OutputStatus struct {
	Path   string
	Exists bool
	IsDir  bool
	// Files counts the regular files hashed into Digest.
	Files int
	// Digest fingerprints the content, and the relative names for directories.
	// It is empty when the path does not exist.
	Digest string
}
