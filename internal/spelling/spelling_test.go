package spelling

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sublint/internal/services"
)

func TestWordListCaseRules(t *testing.T) {
	list := NewWordList()
	list.Add("anime")
	list.Add("Tokyo")
	list.Add("NASA")

	assert.True(t, list.Contains("anime"))
	assert.True(t, list.Contains("Anime"))
	assert.True(t, list.Contains("ANIME"))
	assert.True(t, list.Contains("Tokyo"))
	assert.False(t, list.Contains("tokyo"))
	assert.True(t, list.Contains("NASA"))
	assert.False(t, list.Contains("Nasa"))
	assert.Equal(t, 3, list.Len())
}

func TestLoadCustomListsPriority(t *testing.T) {
	dir := t.TempDir()
	subtitle := filepath.Join(dir, "episode.ass")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dict.txt"), []byte("generic\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dict-en.txt"), []byte("senpai\n!color\r\n"), 0o644))

	white, black, path, err := LoadCustomLists(subtitle, "en_US")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dict-en.txt"), path)
	assert.True(t, white.Contains("Senpai"))
	assert.False(t, white.Contains("generic"), "only the first matching file is read")
	assert.True(t, black.Contains("color"))

	_, _, path, err = LoadCustomLists(filepath.Join(t.TempDir(), "x.ass"), "en")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestCustomListNames(t *testing.T) {
	assert.Equal(t, []string{
		"dict-en_US.txt", "dict-en.txt", "en_US-dict.txt", "en-dict.txt", "dict.txt",
	}, CustomListNames("en_US"))
}

func TestParseDictionary(t *testing.T) {
	dict, err := ParseDictionary(strings.NewReader("4\nhello/MS\nParis\nNATO\n# comment\nworld\n"), "en")
	require.NoError(t, err)
	assert.Equal(t, 4, dict.Len())

	for _, word := range []string{"hello", "Hello", "HELLO", "Paris", "PARIS", "NATO", "world"} {
		assert.True(t, dict.Check(word), word)
	}
	for _, word := range []string{"paris", "hellos", "Nato", "wrld"} {
		assert.False(t, dict.Check(word), word)
	}
}

func TestOpenDictionaryVariantsAndCharset(t *testing.T) {
	dir := t.TempDir()
	// "źle" in ISO-8859-2: 0xBC is ź.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pl.dic"), []byte("1\n\xbcle\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pl.aff"), []byte("SET ISO8859-2\nTRY abc\n"), 0o644))

	dict, err := OpenDictionary(dir, "pl_PL")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pl.dic"), dict.Path)
	assert.True(t, dict.Check("źle"))

	_, err = OpenDictionary(dir, "de_DE")
	require.Error(t, err)
	assert.True(t, services.IsUnavailable(err))
}

func TestProxy(t *testing.T) {
	dict, err := ParseDictionary(strings.NewReader("color\n"), "en")
	require.NoError(t, err)
	white, black := NewWordList(), NewWordList()
	white.Add("senpai")
	black.Add("color")
	proxy := Proxy{Base: dict, Whitelist: white, Blacklist: black}

	assert.False(t, proxy.Check("color"))
	assert.True(t, proxy.Check("senpai"))
	assert.False(t, proxy.Check("colour"))
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"Don't", "stop", "the"}, Words("Don't stop the"))
	assert.Equal(t, []string{"well", "known", "żółć", "rock'n'roll"}, Words("well-known, żółć… 'rock'n'roll' 3D i18n"))
}
