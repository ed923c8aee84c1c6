package translator

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed translation/*.toml
var builtin embed.FS

var Translator *i18n.Bundle

type Config struct {
	// TranslationFolder overrides the built-in messages when set.
	TranslationFolder  string
	SupportedLanguages []string
}

const (
	LanguageEn = "en"
	LanguageFr = "fr"
	LanguageKo = "ko"
)

var SupportedLanguages = []string{LanguageEn, LanguageFr, LanguageKo}

func newBundle() *i18n.Bundle {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return bundle
}

// InitTranslator loads the built-in messages, then every file of
// TranslationFolder on top of them.
func InitTranslator(cfg Config) {
	Translator = newBundle()
	loadBuiltin(Translator)

	if cfg.TranslationFolder == "" {
		return
	}

	lstFiles, err := os.ReadDir(cfg.TranslationFolder)
	if err != nil {
		zap.L().Warn("failed to list translation folder, using built-in messages",
			zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		return
	}

	for _, f := range lstFiles {
		if f.IsDir() {
			continue
		}
		if _, err := Translator.LoadMessageFile(filepath.Join(cfg.TranslationFolder, f.Name())); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(err))
		}
	}
}

func loadBuiltin(bundle *i18n.Bundle) {
	files, err := fs.ReadDir(builtin, "translation")
	if err != nil {
		zap.L().Error("failed to list built-in translations", zap.Error(err))
		return
	}
	for _, f := range files {
		name := path.Join("translation", f.Name())
		if _, err := bundle.LoadMessageFileFS(builtin, name); err != nil {
			zap.L().Warn("failed to load built-in translation", zap.String("file", name), zap.Error(err))
		}
	}
}
