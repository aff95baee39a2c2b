package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// pathParam binds the named chi URL parameter into dest using OpenAPI
// "simple" style. On failure it writes a 422 and returns false.
func pathParam(w http.ResponseWriter, r *http.Request, name string, dest any) bool {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(fmt.Sprintf("invalid path parameter %s", name)))
		return false
	}
	return true
}

// indexParam binds the {index} path parameter.
func indexParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	var index int
	return index, pathParam(w, r, "index", &index)
}

// idParam binds the {id} path parameter.
func idParam(w http.ResponseWriter, r *http.Request) (openapi_types.UUID, bool) {
	var id openapi_types.UUID
	return id, pathParam(w, r, "id", &id)
}

// queryParam binds an optional form-style query parameter into dest, which
// must be a pointer to a pointer so that absence leaves it nil.
// On failure it writes a 422 and returns false.
func queryParam(w http.ResponseWriter, r *http.Request, name string, dest any) bool {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(fmt.Sprintf("invalid query parameter %s", name)))
		return false
	}
	return true
}
