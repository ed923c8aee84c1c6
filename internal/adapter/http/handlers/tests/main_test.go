package tests

import (
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"taskorganizer/pkg/translator"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	translator.InitTranslator(translator.Config{
		SupportedLanguages: translator.SupportedLanguages,
	})
	os.Exit(m.Run())
}
