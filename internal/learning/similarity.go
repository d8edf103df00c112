package learning

// Jaccard returns intersection-over-union of two token sets, in [0, 1].
// Two empty sets score 0, not 1, since empty content carries no similarity
// signal.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := intersectionSize(a, b)
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// Containment returns how much of the smaller token set is contained in the
// larger one, in [0, 1]. It catches the "short note restated inside a longer
// one" case that Jaccard dilutes. 0 when the smaller set is empty.
func Containment(a, b map[string]struct{}) float64 {
	smaller, larger := a, b
	if len(b) < len(a) {
		smaller, larger = b, a
	}
	if len(smaller) == 0 {
		return 0
	}
	return float64(intersectionSize(smaller, larger)) / float64(len(smaller))
}

func intersectionSize(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for t := range a {
		if _, ok := b[t]; ok {
			n++
		}
	}
	return n
}

// candidatePair is a duplicate-candidate edge between two learnings,
// identified by their indices within a category bucket.
type candidatePair struct {
	i, j  int
	kind  string // "jaccard" or "containment"
	score float64
}

// candidatePairs runs the pairwise similarity scan over a bucket's token
// sets. A pair is a candidate when either measure crosses its threshold; the
// recorded kind is the crossing measure with the higher score. Quadratic in
// bucket size, which is fine at the hundreds-of-learnings scale this engine
// targets.
func (c Config) candidatePairs(tokens []map[string]struct{}) []candidatePair {
	var pairs []candidatePair
	for i := 0; i < len(tokens); i++ {
		for j := i + 1; j < len(tokens); j++ {
			jac := Jaccard(tokens[i], tokens[j])
			cont := Containment(tokens[i], tokens[j])

			jacHit := jac >= c.JaccardThreshold
			contHit := cont >= c.ContainmentThreshold
			if !jacHit && !contHit {
				continue
			}

			kind, score := "jaccard", jac
			if contHit && (!jacHit || cont >= jac) {
				kind, score = "containment", cont
			}
			pairs = append(pairs, candidatePair{i: i, j: j, kind: kind, score: score})
		}
	}
	return pairs
}

// IsDuplicate reports whether two texts are duplicate candidates under the
// configured thresholds. Used by ingest to screen new captures against the
// existing collection with the same measures curation uses.
func (c Config) IsDuplicate(a, b string) bool {
	ta, tb := Tokenize(a), Tokenize(b)
	return Jaccard(ta, tb) >= c.JaccardThreshold ||
		Containment(ta, tb) >= c.ContainmentThreshold
}
