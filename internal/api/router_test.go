package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestRoutes_UpdateEndpointsUsePatch(t *testing.T) {
	router := Routes(NewHandlers(nil, nil, nil, nil), testSecret, []string{"*"})
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	paths := []string{
		"/api/accounts/" + uuid.New().String(),
		"/api/transactions/" + uuid.New().String(),
		"/api/goals/" + uuid.New().String(),
	}

	for _, path := range paths {
		// PATCH must reach the handler; a malformed body proves it got there.
		req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader("{"))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("PATCH %s: expected 400 for a malformed body, got %d", path, rec.Code)
		}

		// PUT is not part of the surface.
		putReq := httptest.NewRequest(http.MethodPut, path, strings.NewReader("{}"))
		putReq.Header.Set("Authorization", "Bearer "+token)
		putRec := httptest.NewRecorder()
		router.ServeHTTP(putRec, putReq)
		if putRec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("PUT %s: expected 405, got %d", path, putRec.Code)
		}
	}
}
