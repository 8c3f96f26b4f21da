package state

// OccupationMetadata describes one corpus entry.
type OccupationMetadata struct {
	OccupationCode  string `json:"occupation_code"`
	FamilyName      string `json:"family_name"`
	DivisionName    string `json:"division_name"`
	OccupationTitle string `json:"occupation_title"`
}

// RetrievalResult holds ranked hits as four parallel sequences. Index i of
// each slice refers to the same hit.
type RetrievalResult struct {
	Documents []string             `json:"documents"`
	Distances []float64            `json:"distances"`
	Metadatas []OccupationMetadata `json:"metadatas"`
	IDs       []string             `json:"ids"`
}

func (r *RetrievalResult) Len() int {
	if r == nil {
		return 0
	}
	return len(r.IDs)
}

// Append adds a single hit to the end of every sequence.
func (r *RetrievalResult) Append(id, document string, distance float64, meta OccupationMetadata) {
	r.IDs = append(r.IDs, id)
	r.Documents = append(r.Documents, document)
	r.Distances = append(r.Distances, distance)
	r.Metadatas = append(r.Metadatas, meta)
}

// Merge concatenates every sequence of older and newer, older hits first.
// Duplicates are kept. A nil side contributes nothing.
func Merge(older, newer *RetrievalResult) *RetrievalResult {
	if older == nil && newer == nil {
		return nil
	}

	merged := &RetrievalResult{}
	for _, r := range []*RetrievalResult{older, newer} {
		if r == nil {
			continue
		}
		merged.Documents = append(merged.Documents, r.Documents...)
		merged.Distances = append(merged.Distances, r.Distances...)
		merged.Metadatas = append(merged.Metadatas, r.Metadatas...)
		merged.IDs = append(merged.IDs, r.IDs...)
	}
	return merged
}
