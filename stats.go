package sheaf

// Stats contains container-level figures for the current in-memory state.
type Stats struct {
	Sections        int   // count of live sections
	ContentBytes    int64 // sum of section content lengths
	SerializedBytes int64 // exact flush output size, headers included
}

// SectionStats contains per-section figures.
type SectionStats struct {
	Name  string
	Bytes int64 // content length
	Lines int64 // line terminator count
}

// Stats reports totals across all live sections.
func (s *Sheaf) Stats() Stats {
	st := Stats{Sections: len(s.order)}
	for _, id := range s.order {
		e := s.entries[id]
		st.ContentBytes += e.size()
		st.SerializedBytes += e.serializedSize()
	}
	return st
}

// SectionStats reports per-section figures in container order, matching Names.
func (s *Sheaf) SectionStats() []SectionStats {
	out := make([]SectionStats, 0, len(s.order))
	for _, id := range s.order {
		e := s.entries[id]
		out = append(out, SectionStats{
			Name:  e.name,
			Bytes: e.size(),
			Lines: e.lineCount(),
		})
	}
	return out
}
