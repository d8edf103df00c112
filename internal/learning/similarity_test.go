package learning

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJaccardSymmetry(t *testing.T) {
	a := Tokenize("JWT refresh tokens must be rotated on every use")
	b := Tokenize("rotate refresh tokens after each use")

	assert.Equal(t, Jaccard(a, b), Jaccard(b, a))
}

func TestJaccardIdentical(t *testing.T) {
	a := Tokenize("connection pool exhaustion under load")

	assert.Equal(t, 1.0, Jaccard(a, a))
}

func TestJaccardEmptySets(t *testing.T) {
	empty := map[string]struct{}{}

	assert.Equal(t, 0.0, Jaccard(empty, empty))
	assert.Equal(t, 0.0, Jaccard(empty, Tokenize("something here")))
}

func TestContainmentBounds(t *testing.T) {
	pairs := [][2]string{
		{"pytest testing", "pytest testing python applications"},
		{"completely different words", "nothing shared here"},
		{"one common token", "token"},
	}
	for _, p := range pairs {
		c := Containment(Tokenize(p[0]), Tokenize(p[1]))
		assert.GreaterOrEqual(t, c, 0.0)
		assert.LessOrEqual(t, c, 1.0)
	}
}

func TestContainmentSubsetIsOne(t *testing.T) {
	small := Tokenize("Use pytest for testing")
	large := Tokenize("Use pytest for testing Python applications effectively")

	assert.Equal(t, 1.0, Containment(small, large))
	// Symmetric when one set contains the other.
	assert.Equal(t, 1.0, Containment(large, small))
}

func TestContainmentEmptySmaller(t *testing.T) {
	assert.Equal(t, 0.0, Containment(map[string]struct{}{}, Tokenize("whatever content")))
}

// Related-but-not-duplicate learnings must stay below both thresholds:
// sharing a topic is not the same as restating it.
func TestRelatedContentIsNotCandidate(t *testing.T) {
	cfg := DefaultConfig()

	a := Tokenize("FastAPI middleware executes in reverse order of registration")
	b := Tokenize("Middleware execution order in FastAPI")

	assert.Less(t, Jaccard(a, b), cfg.JaccardThreshold)
	assert.Less(t, Containment(a, b), cfg.ContainmentThreshold)

	pairs := cfg.candidatePairs([]map[string]struct{}{a, b})
	assert.Empty(t, pairs)
}

func TestContainedContentIsCandidate(t *testing.T) {
	cfg := DefaultConfig()

	a := Tokenize("Use pytest for testing")
	b := Tokenize("Use pytest for testing Python applications effectively")

	pairs := cfg.candidatePairs([]map[string]struct{}{a, b})
	require.Len(t, pairs, 1)
	assert.Equal(t, "containment", pairs[0].kind)
	assert.Equal(t, 1.0, pairs[0].score)
}

func TestCandidatePairKindPrefersHigherScore(t *testing.T) {
	cfg := DefaultConfig()

	// Identical sets: jaccard 1.0 and containment 1.0 both cross; kind
	// resolves to containment since cont >= jac.
	a := Tokenize("prefer table driven tests")
	pairs := cfg.candidatePairs([]map[string]struct{}{a, a})
	require.Len(t, pairs, 1)
	assert.Equal(t, "containment", pairs[0].kind)
}

func TestIsDuplicate(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.IsDuplicate(
		"Use pytest for testing",
		"Use pytest for testing Python applications effectively",
	))
	assert.False(t, cfg.IsDuplicate(
		"FastAPI middleware executes in reverse order of registration",
		"Middleware execution order in FastAPI",
	))
}

func BenchmarkCandidatePairs(b *testing.B) {
	cfg := DefaultConfig()

	tokens := make([]map[string]struct{}, 200)
	for i := range tokens {
		tokens[i] = Tokenize(fmt.Sprintf(
			"learning number %d about connection pools and retry budgets in service %d", i, i%7))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cfg.candidatePairs(tokens)
	}
}
