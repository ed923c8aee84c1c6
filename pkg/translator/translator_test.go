package translator_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskorganizer/pkg/translator"
)

func localize(t *testing.T, lang, id string) string {
	t.Helper()
	localizer := i18n.NewLocalizer(translator.Translator, lang)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	require.NoError(t, err)
	return msg
}

func TestInitTranslator_BuiltinMessages(t *testing.T) {
	translator.InitTranslator(translator.Config{})

	assert.Equal(t, "Task not found.", localize(t, translator.LanguageEn, "taskNotFound"))
	assert.Equal(t, "Tâche introuvable.", localize(t, translator.LanguageFr, "taskNotFound"))
	assert.Equal(t, "작업을 찾을 수 없습니다.", localize(t, translator.LanguageKo, "taskNotFound"))
}

func TestInitTranslator_FolderOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
taskNotFound = "No such task here."
hello = "Hello english"
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.toml"), content, 0o644))

	translator.InitTranslator(translator.Config{
		TranslationFolder:  dir,
		SupportedLanguages: translator.SupportedLanguages,
	})

	assert.Equal(t, "Hello english", localize(t, translator.LanguageEn, "hello"))
	assert.Equal(t, "No such task here.", localize(t, translator.LanguageEn, "taskNotFound"))
	assert.Equal(t, "Could not create the task.", localize(t, translator.LanguageEn, "failCreateTask"))
}

func TestInitTranslator_InvalidFolder(t *testing.T) {
	translator.InitTranslator(translator.Config{
		TranslationFolder:  "/path/does/not/exist",
		SupportedLanguages: []string{translator.LanguageEn},
	})

	assert.Equal(t, "Task not found.", localize(t, translator.LanguageEn, "taskNotFound"))
}

func TestTranslatorConstants(t *testing.T) {
	assert.Equal(t, "en", translator.LanguageEn)
	assert.Equal(t, "fr", translator.LanguageFr)
	assert.Equal(t, "ko", translator.LanguageKo)
}
