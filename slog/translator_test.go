package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/newsextract/mock"
	neslog "github.com/fwojciec/newsextract/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingTranslator_Translate(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Translator{
		TranslateFn: func(_ context.Context, text, target string) (string, error) {
			return "[" + target + "] " + text, nil
		},
	}

	got, err := neslog.NewLoggingTranslator(inner, logger).Translate(context.Background(), "hola", "en")

	require.NoError(t, err)
	assert.Equal(t, "[en] hola", got)
	assert.Contains(t, buf.String(), "translate")
	assert.Contains(t, buf.String(), "target=en")
	assert.Contains(t, buf.String(), "chars=4")
}
