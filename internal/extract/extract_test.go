package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeText_Plain(t *testing.T) {
	text, err := ResumeText("text/plain; charset=utf-8", []byte("Alex Carter\nGo, SQL"))
	require.NoError(t, err)
	assert.Equal(t, "Alex Carter\nGo, SQL", text)
}

func TestResumeText_Unsupported(t *testing.T) {
	_, err := ResumeText("image/png", []byte{0x89, 'P', 'N', 'G'})
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = ResumeText("", nil)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestResumeText_CorruptDocuments(t *testing.T) {
	_, err := ResumeText(MimePDF, []byte("not a pdf"))
	assert.Error(t, err)

	_, err = ResumeText(MimeDocx, []byte("not a zip"))
	assert.Error(t, err)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("application/pdf"))
	assert.True(t, Supported(MimeDocx))
	assert.True(t, Supported("text/plain; charset=utf-8"))
	assert.False(t, Supported("application/msword"))
	assert.False(t, Supported(""))
}
