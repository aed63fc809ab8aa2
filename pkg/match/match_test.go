// pkg/match/match_test.go

package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptySetMatchesEverything(t *testing.T) {
	set, err := NewFilterSet(nil, nil)
	require.NoError(t, err)
	assert.True(t, set.Empty())
	assert.True(t, set.Matches("anything at all"))

	var nilSet *FilterSet
	assert.True(t, nilSet.Matches("still true"))
}

func TestSubstringMatch(t *testing.T) {
	set, err := NewFilterSet([]string{"password"}, nil)
	require.NoError(t, err)
	assert.True(t, set.Matches("export DB_password=hunter2"))
	assert.False(t, set.Matches("export DB_PASSWORD=hunter2"))
	assert.False(t, set.Matches("ls -la"))
}

func TestPatternMatch(t *testing.T) {
	set, err := NewFilterSet(nil, []string{`(?i)api[_-]?key`})
	require.NoError(t, err)
	assert.True(t, set.Matches("curl -H 'X-Api-Key: abc'"))
	assert.False(t, set.Matches("curl example.com"))
}

func TestOrSemantics(t *testing.T) {
	set, err := NewFilterSet([]string{"ssh"}, []string{`^curl `})
	require.NoError(t, err)
	assert.True(t, set.Matches("ssh host"))
	assert.True(t, set.Matches("curl http://x"))
	assert.False(t, set.Matches("echo curl"))
}

func TestInvalidPatternRejected(t *testing.T) {
	_, err := NewFilterSet(nil, []string{"("})
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	set, err := NewFilterSet([]string{"tok"}, []string{"a+b"})
	require.NoError(t, err)
	desc := set.Describe()
	require.Len(t, desc, 2)
	assert.Contains(t, desc[0], "tok")
	assert.Contains(t, desc[1], "a+b")
}
