package parameters

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestSplitModule(t *testing.T) {
	module, rest := SplitModule("alphabeta:depth=3,eval=better")
	assert.Equal(t, "alphabeta", module)
	assert.Equal(t, "depth=3,eval=better", rest)

	module, rest = SplitModule("random")
	assert.Equal(t, "random", module)
	assert.Equal(t, "", rest)
}

func TestNewFromConfigString(t *testing.T) {
	params := NewFromConfigString("depth=3, verbose,expr=a=b,")
	assert.Equal(t, Params{"depth": "3", "verbose": "", "expr": "a=b"}, params)
	assert.Empty(t, NewFromConfigString(""))
}

func TestGetParamOr(t *testing.T) {
	params := NewFromConfigString("depth=3,prob=0.8,eval=better,quick,slow=false,budget=2s,bad=x")

	depth, err := GetParamOr(params, "depth", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, depth)

	prob, err := GetParamOr(params, "prob", 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.8, prob)

	eval, err := GetParamOr(params, "eval", "score")
	require.NoError(t, err)
	assert.Equal(t, "better", eval)

	quick, err := GetParamOr(params, "quick", false)
	require.NoError(t, err)
	assert.True(t, quick)

	slow, err := GetParamOr(params, "slow", true)
	require.NoError(t, err)
	assert.False(t, slow)

	budget, err := GetParamOr(params, "budget", time.Second)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, budget)

	missing, err := GetParamOr(params, "missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, missing)

	_, err = GetParamOr(params, "bad", 1)
	assert.Error(t, err)
	_, err = GetParamOr(params, "bad", true)
	assert.Error(t, err)

	// GetParamOr doesn't consume.
	assert.Contains(t, params, "depth")
}

func TestPopParamOrAndCheckAllConsumed(t *testing.T) {
	params := NewFromConfigString("depth=4,eval=better")
	depth, err := PopParamOr(params, "depth", 2)
	require.NoError(t, err)
	assert.Equal(t, 4, depth)
	assert.NotContains(t, params, "depth")

	err = CheckAllConsumed(params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "eval")

	_, err = PopParamOr(params, "eval", "score")
	require.NoError(t, err)
	assert.NoError(t, CheckAllConsumed(params))
}
