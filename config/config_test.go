package config

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	c := map[string]string{
		"PORT":     "9090",
		"BAD_INT":  "nine",
		"DEBUG":    "true",
		"ORIGINS":  " https://a.dev, ,https://b.dev ",
		"EMPTY":    "",
		"MAX_SIZE": "20971520",
	}

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "9090", GetString(c, "PORT", "8080"))
		assert.Equal(t, "fallback", GetString(c, "MISSING", "fallback"))
		assert.Equal(t, "fallback", GetString(c, "EMPTY", "fallback"))
		assert.Equal(t, "fallback", GetString(nil, "PORT", "fallback"))
	})

	t.Run("int", func(t *testing.T) {
		assert.Equal(t, 9090, GetInt(c, "PORT", 8080))
		assert.Equal(t, 8080, GetInt(c, "BAD_INT", 8080))
		assert.Equal(t, int64(20971520), GetInt64(c, "MAX_SIZE", 1))
	})

	t.Run("bool", func(t *testing.T) {
		assert.True(t, GetBool(c, "DEBUG", false))
		assert.False(t, GetBool(c, "MISSING", false))
	})

	t.Run("strings", func(t *testing.T) {
		assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, GetStrings(c, "ORIGINS", nil))
		assert.Equal(t, []string{"*"}, GetStrings(c, "MISSING", []string{"*"}))
	})
}

func TestSplit(t *testing.T) {
	key, value := split("A=b=c")
	assert.Equal(t, "A", key)
	assert.Equal(t, "b=c", value)

	key, value = split("LONELY")
	assert.Equal(t, "LONELY", key)
	assert.Equal(t, "", value)
}

type fakeParameterGetter struct {
	values map[string]string
	calls  int
}

func (f *fakeParameterGetter) GetParameter(_ context.Context, params *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.calls++
	value, ok := f.values[aws.ToString(params.Name)]
	if !ok {
		return nil, errors.New("ParameterNotFound")
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: aws.String(value)}}, nil
}

func TestResolveSecret(t *testing.T) {
	getter := &fakeParameterGetter{values: map[string]string{"/portfolio/admin-key": "from-ssm\n"}}
	newGetter := func(context.Context, map[string]string) (ParameterGetter, error) { return getter, nil }

	t.Run("direct value wins", func(t *testing.T) {
		c := map[string]string{"ADMIN_API_KEY": "direct", "ADMIN_API_KEY_SSM_PARAMETER": "/portfolio/admin-key"}
		secret, err := ResolveSecret(context.Background(), c, "ADMIN_API_KEY", "ADMIN_API_KEY_SSM_PARAMETER", newGetter)
		require.NoError(t, err)
		assert.Equal(t, "direct", secret)
		assert.Equal(t, 0, getter.calls)
	})

	t.Run("falls back to parameter store", func(t *testing.T) {
		c := map[string]string{"ADMIN_API_KEY_SSM_PARAMETER": "/portfolio/admin-key"}
		secret, err := ResolveSecret(context.Background(), c, "ADMIN_API_KEY", "ADMIN_API_KEY_SSM_PARAMETER", newGetter)
		require.NoError(t, err)
		assert.Equal(t, "from-ssm", secret)
	})

	t.Run("unknown parameter", func(t *testing.T) {
		c := map[string]string{"ADMIN_API_KEY_SSM_PARAMETER": "/missing"}
		_, err := ResolveSecret(context.Background(), c, "ADMIN_API_KEY", "ADMIN_API_KEY_SSM_PARAMETER", newGetter)
		assert.Error(t, err)
	})

	t.Run("nothing configured", func(t *testing.T) {
		_, err := ResolveSecret(context.Background(), map[string]string{}, "ADMIN_API_KEY", "ADMIN_API_KEY_SSM_PARAMETER", newGetter)
		assert.Error(t, err)
	})
}
