package http

import "github.com/julienschmidt/httprouter"

// NewRouter wires the book routes onto a fresh router.
func NewRouter(h *BookHandler) *httprouter.Router {
	router := httprouter.New()
	router.RedirectTrailingSlash = true
	router.GET("/", h.Welcome)
	router.GET("/books", h.List)
	router.POST("/books", h.Create)
	router.GET("/books/:id", h.Get)
	router.PUT("/books/:id", h.Update)
	router.DELETE("/books/:id", h.Delete)
	return router
}
