package core

// StalenessTracker records which of the three query inputs changed since the
// resource chain was last rebuilt. The flags are independent: any subset may
// be set at once. Each MustRebuild predicate folds the dependency cascade in
// declaratively, so an upstream change marks every downstream resource stale
// without the chain tracking its own dependency graph.
type StalenessTracker struct {
	sourceChanged  bool
	contextChanged bool
	subjectChanged bool
}

func NewStalenessTracker() *StalenessTracker {
	// A fresh tracker starts fully stale so the first rebuild constructs
	// the whole chain.
	return &StalenessTracker{
		sourceChanged:  true,
		contextChanged: true,
		subjectChanged: true,
	}
}

func (t *StalenessTracker) MarkSourceChanged()  { t.sourceChanged = true }
func (t *StalenessTracker) MarkContextChanged() { t.contextChanged = true }
func (t *StalenessTracker) MarkSubjectChanged() { t.subjectChanged = true }

func (t *StalenessTracker) IsStale() bool {
	return t.sourceChanged || t.contextChanged || t.subjectChanged
}

func (t *StalenessTracker) MustRebuildEngine() bool {
	return t.sourceChanged
}

func (t *StalenessTracker) MustRebuildPathFactory() bool {
	return t.sourceChanged || t.contextChanged
}

func (t *StalenessTracker) MustRebuildEntryPath() bool {
	return t.sourceChanged || t.contextChanged || t.subjectChanged
}

// ClearAll resets every flag. Called once after a successful full-chain
// rebuild.
func (t *StalenessTracker) ClearAll() {
	t.sourceChanged = false
	t.contextChanged = false
	t.subjectChanged = false
}

// ClearSource resets only the source flag, leaving context and subject
// staleness for a later full rebuild. Used after an engine-only refresh.
func (t *StalenessTracker) ClearSource() {
	t.sourceChanged = false
}
