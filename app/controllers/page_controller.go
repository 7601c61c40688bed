package controllers

import "net/http"

// PageController serves the static about and contact pages
type PageController struct {
	Base
}

// NewPageController creates a new PageController
func NewPageController(b Base) *PageController {
	return &PageController{Base: b}
}

// About handles GET /about
func (pc *PageController) About(w http.ResponseWriter, r *http.Request) {
	pc.render(w, r, "about", nil)
}

// Contact handles GET /contact
func (pc *PageController) Contact(w http.ResponseWriter, r *http.Request) {
	pc.render(w, r, "contact", nil)
}
