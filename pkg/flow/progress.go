package flow

// Progress is the processed-site count against the guided catalog size.
type Progress struct {
	Processed int
	Total     int
}

// Percent returns the processed share in [0, 100].
func (p Progress) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	pct := float64(p.Processed) / float64(p.Total) * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}
