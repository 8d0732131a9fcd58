package render

import "time"

// BackdateReport moves the start of the current statistics window.
func (f *FrameRenderer) BackdateReport(d time.Duration) {
	f.reportFrom = f.reportFrom.Add(-d)
}
