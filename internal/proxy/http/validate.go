package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jasiripay/krabridge/pkg/httpx"
	"github.com/jasiripay/krabridge/pkg/kratypes"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeAndValidate unmarshals the JSON request body into dst and runs struct
// validation. On failure it writes a 400 with field-level detail and returns
// false. An empty body decodes to the zero value so optional-only shapes
// (the token request) accept no body at all.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, kratypes.ErrorResponse{Error: "unable to read request body"})
		return false
	}

	if len(body) > 0 {
		if err := json.Unmarshal(body, dst); err != nil {
			httpx.WriteJSON(w, http.StatusBadRequest, kratypes.ErrorResponse{Error: "invalid JSON body"})
			return false
		}
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			httpx.WriteJSON(w, http.StatusBadRequest, kratypes.ErrorResponse{Error: fieldErrors(verrs)})
			return false
		}
		httpx.WriteJSON(w, http.StatusBadRequest, kratypes.ErrorResponse{Error: "invalid request"})
		return false
	}

	return true
}

// fieldErrors maps each failing field to a short human-readable reason.
func fieldErrors(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = "this field is required"
		case "max":
			out[fe.Field()] = "must be at most " + fe.Param() + " characters"
		case "oneof":
			out[fe.Field()] = "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
		default:
			out[fe.Field()] = "invalid value"
		}
	}
	return out
}

// appOrDefault applies the app1 default for requests that omit the selector.
func appOrDefault(app string) string {
	if app == "" {
		return kratypes.DefaultApp
	}
	return app
}
