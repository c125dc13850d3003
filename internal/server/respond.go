package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	nmerrors "github.com/matzehuels/netmap/pkg/errors"
	"github.com/matzehuels/netmap/pkg/layout"
	"github.com/matzehuels/netmap/pkg/store"
)

// maxBodyBytes bounds request bodies. Generated topologies with thousands of
// nodes stay well below it.
const maxBodyBytes = 16 << 20

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

var validate = validator.New()

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

// respondError writes err with the status its code maps to. Internal
// failures are logged and answered with a generic message.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	err = classify(err)
	code := nmerrors.GetCode(err)
	if code == "" {
		code = nmerrors.ErrCodeInternal
	}
	status := nmerrors.HTTPStatus(err)
	msg := nmerrors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
		if code == nmerrors.ErrCodeInternal {
			msg = "internal error"
		}
	}
	s.respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: msg,
		Code:    string(code),
	})
}

// classify attaches a code to errors from lower layers that carry only a
// sentinel.
func classify(err error) error {
	if nmerrors.GetCode(err) != "" {
		return err
	}
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nmerrors.Wrap(nmerrors.ErrCodeTopologyNotFound, err, "topology not found")
	case errors.Is(err, store.ErrInvalidName):
		return nmerrors.Wrap(nmerrors.ErrCodeInvalidName, err, "%s", err.Error())
	case errors.Is(err, layout.ErrUnknownAlgorithm):
		return nmerrors.Wrap(nmerrors.ErrCodeInvalidInput, err, "%s", err.Error())
	}
	return err
}

// decode reads a JSON body into v and validates its struct tags.
func decode(r *http.Request, v any) error {
	body := io.LimitReader(r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nmerrors.New(nmerrors.ErrCodeInvalidInput, "request body is empty")
		}
		return nmerrors.Wrap(nmerrors.ErrCodeInvalidInput, err, "invalid request body: %v", err)
	}
	if err := validate.Struct(v); err != nil {
		return nmerrors.Wrap(nmerrors.ErrCodeInvalidInput, err, "%s", validationMessage(err))
	}
	return nil
}

// validationMessage renders the first field error readably.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	e := verrs[0]
	field := strings.ToLower(e.Field())
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "min":
		return fmt.Sprintf("%s needs at least %s entries", field, e.Param())
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", field, strings.ToLower(e.Param()))
	default:
		return fmt.Sprintf("%s failed %s validation", field, e.Tag())
	}
}
