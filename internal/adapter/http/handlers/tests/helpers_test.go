package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	httpadapter "taskorganizer/internal/adapter/http"
	"taskorganizer/internal/adapter/http/handlers"
	"taskorganizer/pkg/apierrors"
)

func newRouter(tasks *taskServiceMock, reviews *reviewServiceMock) *gin.Engine {
	router := gin.New()
	httpadapter.RegisterRoutes(
		router,
		handlers.NewHealthHandler(nil, nil),
		handlers.NewTaskHandler(tasks, time.UTC),
		handlers.NewReviewHandler(reviews, time.UTC),
	)
	return router
}

func doRequest(router http.Handler, method, path, body, lang string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if lang != "" {
		req.Header.Set("Accept-Language", lang)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apierrors.JsonErr {
	t.Helper()
	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, rec.Code, got.ErrDetails.Code)
	return got
}
