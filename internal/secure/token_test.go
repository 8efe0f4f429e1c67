package secure

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToken(t *testing.T) {
	t.Parallel()

	tok, err := NewToken("s.abcdef123456")
	require.NoError(t, err)
	defer tok.Destroy()

	value, err := tok.Reveal()
	require.NoError(t, err)
	assert.Equal(t, "s.abcdef123456", value)

	// Revealing twice yields the same value.
	again, err := tok.Reveal()
	require.NoError(t, err)
	assert.Equal(t, value, again)
}

func TestNewToken_Empty(t *testing.T) {
	t.Parallel()

	tok, err := NewToken("")
	assert.Error(t, err)
	assert.Nil(t, tok)
}

func TestToken_Destroy(t *testing.T) {
	t.Parallel()

	tok, err := NewToken("hvs.secret")
	require.NoError(t, err)

	tok.Destroy()
	tok.Destroy()

	_, err = tok.Reveal()
	assert.ErrorIs(t, err, ErrDestroyed)

	var none *Token
	assert.NotPanics(t, none.Destroy)
}

func TestToken_ConcurrentReveal(t *testing.T) {
	t.Parallel()

	tok, err := NewToken("hvs.concurrent")
	require.NoError(t, err)
	defer tok.Destroy()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := tok.Reveal()
			assert.NoError(t, err)
			assert.Equal(t, "hvs.concurrent", value)
		}()
	}
	wg.Wait()
}
