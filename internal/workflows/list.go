package workflows

// List returns the display paths of the passwords below subtree, or of the
// whole store when subtree is empty.
func List(s *Session, subtree string) ([]string, error) {
	files, err := s.Manager.PasswordFilesIn(subtree)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.DisplayPath())
	}
	return paths, nil
}
