package attachment

import (
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringInput(name, mimeType, content string) Input {
	return Input{
		Name:     name,
		MimeType: mimeType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func TestEncodeAllPreservesOrder(t *testing.T) {
	inputs := []Input{
		stringInput("a.txt", "text/plain", "alpha"),
		stringInput("b.png", "image/png", "bravo"),
		stringInput("c.txt", "text/plain", "charlie"),
	}

	atts, err := EncodeAll(inputs)
	require.NoError(t, err)
	require.Len(t, atts, 3)

	assert.Equal(t, "a.txt", atts[0].Name)
	assert.Equal(t, "b.png", atts[1].Name)
	assert.Equal(t, "c.txt", atts[2].Name)

	wantData := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("bravo"))
	assert.Equal(t, wantData, atts[1].Data)
}

func TestEncodeAllMimeFallback(t *testing.T) {
	atts, err := EncodeAll([]Input{stringInput("blob", "", "payload")})
	require.NoError(t, err)
	require.Len(t, atts, 1)
	assert.Equal(t, "application/octet-stream", atts[0].MimeType)
	assert.True(t, strings.HasPrefix(atts[0].Data, "data:application/octet-stream;base64,"))
}

func TestEncodeAllFailsWholeBatch(t *testing.T) {
	boom := errors.New("disk gone")
	inputs := []Input{
		stringInput("ok.txt", "text/plain", "fine"),
		{
			Name:     "bad.txt",
			MimeType: "text/plain",
			Open:     func() (io.ReadCloser, error) { return nil, boom },
		},
	}

	atts, err := EncodeAll(inputs)
	assert.Nil(t, atts)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "bad.txt")
}

func TestEncodeAllEmptyBatch(t *testing.T) {
	atts, err := EncodeAll(nil)
	require.NoError(t, err)
	assert.Empty(t, atts)
}
