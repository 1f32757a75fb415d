package bloom_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/newsextract/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_Seen(t *testing.T) {
	t.Parallel()

	t.Run("admits a URL once", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(100, 0.001)

		assert.False(t, f.Seen("https://example.com/news/1"))
		assert.True(t, f.Seen("https://example.com/news/1"))
		assert.False(t, f.Seen("https://example.com/news/2"))
		assert.Equal(t, uint(2), f.Admitted())
	})

	t.Run("treats URL variants as the same article", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(100, 0.001)
		f.Seen("https://example.com/news/1")

		for _, variant := range []string{
			"https://example.com/news/1#comments",
			"https://example.com/news/1/",
			"https://EXAMPLE.com/news/1",
			"  https://example.com/news/1  ",
		} {
			assert.True(t, f.Seen(variant), variant)
		}
		assert.Equal(t, uint(1), f.Admitted())
	})

	t.Run("keeps query strings distinct", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(100, 0.001)
		f.Seen("https://example.com/article?id=1")

		assert.False(t, f.Seen("https://example.com/article?id=2"))
	})

	t.Run("is safe for concurrent use", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(1000, 0.001)

		var wg sync.WaitGroup
		for w := 0; w < 8; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 100; i++ {
					f.Seen(fmt.Sprintf("https://example.com/news/%d", i))
				}
			}()
		}
		wg.Wait()

		assert.LessOrEqual(t, f.Admitted(), uint(100))
		assert.GreaterOrEqual(t, f.Admitted(), uint(99))
	})
}

func TestFilter_FalsePositives(t *testing.T) {
	t.Parallel()

	// An undersized filter at a high rate answers "maybe" for almost
	// everything.
	f := bloom.NewFilter(1, 0.99)

	for i := range 200 {
		url := fmt.Sprintf("https://example.com/news/%d", i)
		assert.False(t, f.Seen(url), url)
	}
	assert.Equal(t, uint(200), f.Admitted())
	assert.True(t, f.Seen("https://example.com/news/7"))
}

func TestKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "https://example.com/a/", want: "https://example.com/a"},
		{in: "HTTPS://Example.COM/A#x", want: "https://example.com/A"},
		{in: "https://example.com/a?b=1#c", want: "https://example.com/a?b=1"},
		{in: "%zz#frag/", want: "%zz"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, bloom.Key(tt.in))
		})
	}
}
