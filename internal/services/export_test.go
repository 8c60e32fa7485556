package services

// SetMaxBodyBytes lowers the response size limit and returns a func restoring it.
func SetMaxBodyBytes(n int64) func() {
	prev := maxBodyBytes
	maxBodyBytes = n
	return func() { maxBodyBytes = prev }
}
