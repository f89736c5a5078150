package util

// FailureStreak counts consecutive request failures so a source can abort
// its remaining queries instead of retrying a dead upstream indefinitely.
type FailureStreak struct {
	count     int
	threshold int
}

func NewFailureStreak(threshold int) *FailureStreak {
	if threshold <= 0 {
		threshold = 3
	}
	return &FailureStreak{threshold: threshold}
}

func (f *FailureStreak) Failure() { f.count++ }

func (f *FailureStreak) Success() { f.count = 0 }

// Tripped reports whether the streak reached the abort threshold.
func (f *FailureStreak) Tripped() bool { return f.count >= f.threshold }

func (f *FailureStreak) Count() int { return f.count }
