package auth

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gleegrow/gleegrow-api/internal/storage"
)

// ChildReader is the store slice the ownership check needs.
type ChildReader interface {
	GetChild(ctx context.Context, childID string) (storage.Child, bool, error)
}

// RequireChildOwnership guards routes carrying a {childID} URL param: the
// authenticated parent must own the child. Admins pass through. An
// unknown child is 404, a foreign child is 403, and a storage failure is
// 503 rather than a silent allow.
func RequireChildOwnership(store ChildReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if RoleFromContext(ctx) == "admin" {
				next.ServeHTTP(w, r)
				return
			}

			childID := chi.URLParam(r, "childID")
			if childID == "" {
				http.Error(w, "missing child id", http.StatusBadRequest)
				return
			}
			child, ok, err := store.GetChild(ctx, childID)
			if err != nil {
				http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
				return
			}
			if !ok {
				http.Error(w, "child not found", http.StatusNotFound)
				return
			}
			if child.ParentUID != SubjectFromContext(ctx) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
