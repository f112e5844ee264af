package domain

// ProgressFunc reports pagination progress.
// Called once per page: (100, 540), (200, 540), ...
// total is 0 when the server does not report a totalSize.
type ProgressFunc func(loaded, total int)
