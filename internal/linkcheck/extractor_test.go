package linkcheck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFromMarkdown(t *testing.T) {
	body := []byte(`Intro with [a post](../2019/enums.md) and [site](https://example.com).

![diagram](images/diffing.png)

Also [anchor](#section) and [mail](mailto:me@example.com).
`)

	links, err := ExtractFromMarkdown(body)
	require.NoError(t, err)
	require.Len(t, links, 5)

	byURL := map[string]Link{}
	for _, l := range links {
		byURL[l.URL] = l
	}

	assert.True(t, byURL["../2019/enums.md"].IsRelative)
	assert.Equal(t, "a", byURL["../2019/enums.md"].Tag)
	assert.False(t, byURL["https://example.com"].IsRelative)
	assert.True(t, byURL["images/diffing.png"].IsRelative)
	assert.Equal(t, "img", byURL["images/diffing.png"].Tag)
	assert.False(t, byURL["#section"].IsRelative)
	_, hasMail := byURL["mailto:me@example.com"]
	assert.True(t, hasMail)
	assert.False(t, byURL["mailto:me@example.com"].IsRelative)
}

func TestVerifyPost(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "2019"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "2020", "images"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "2019", "enums.md"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "2020", "images", "ok.png"), []byte("x"), 0o600))

	body := []byte(`See [enums](../2019/enums.md), ![ok](images/ok.png), ![missing](images/gone.png), [ext](https://example.com).`)

	broken, err := VerifyPost(root, "2020/post.md", body)
	require.NoError(t, err)
	require.Len(t, broken, 1)
	assert.Equal(t, "images/gone.png", broken[0].URL)
	assert.Equal(t, "2020/post.md", broken[0].Post)
}

func TestVerifyPostSkipsSiteAbsolute(t *testing.T) {
	broken, err := VerifyPost(t.TempDir(), "2020/post.md", []byte(`[home](/index.html)`))
	require.NoError(t, err)
	assert.Empty(t, broken)
}
