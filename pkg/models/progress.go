package models

// SideProgress is the progress of one hashing task at a point in time
type SideProgress struct {
	BytesProcessed int64
	ExpectedTotal  int64

	// Percent is floor(BytesProcessed / ExpectedTotal * 100), valid only when Known
	Percent int
	Known   bool

	Complete bool
}

// ProgressSnapshot pairs the progress of both hashing tasks
type ProgressSnapshot struct {
	One SideProgress
	Two SideProgress
}

// Done reports whether both sides have completed
func (s ProgressSnapshot) Done() bool {
	return s.One.Complete && s.Two.Complete
}
