package sqlite

// nullString returns nil for empty strings, otherwise the string itself
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
