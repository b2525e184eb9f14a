package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListBlogPosts handles GET /blog, optionally filtered by ?category=.
func (s *Server) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.blog.List(r.URL.Query().Get("category"))
	if err != nil {
		writeDomainError(w, s.log, err, "blog")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// GetBlogPost handles GET /blog/{slug}.
func (s *Server) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.blog.BySlug(chi.URLParam(r, "slug"))
	if err != nil {
		writeDomainError(w, s.log, err, "post")
		return
	}
	writeJSON(w, http.StatusOK, post)
}
