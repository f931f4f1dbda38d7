package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"journeybuilder/pkg/common"
	pkgerrors "journeybuilder/pkg/errors"
	"journeybuilder/pkg/utils"
)

// base carries the helpers every handler shares
type base struct {
	errors *pkgerrors.ErrorHandler
	logger *zap.Logger
}

func newBase(errs *pkgerrors.ErrorHandler, logger *zap.Logger) base {
	if logger == nil {
		logger = zap.NewNop()
	}
	if errs == nil {
		errs = pkgerrors.NewErrorHandler(logger, false)
	}
	return base{errors: errs, logger: logger}
}

// decode reads and validates a JSON body into v
func (b base) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := common.ParseJSONBody(w, r, v, common.DefaultMaxBodyBytes); err != nil {
		b.errors.Handle(w, r, pkgerrors.NewValidationError("Invalid request body: "+err.Error()))
		return false
	}
	if err := utils.ValidateStruct(v); err != nil {
		b.errors.Handle(w, r, err)
		return false
	}
	return true
}

func (b base) fail(w http.ResponseWriter, r *http.Request, err error) {
	b.errors.Handle(w, r, err)
}

func (b base) ok(w http.ResponseWriter, r *http.Request, data interface{}) {
	common.RespondWithMeta(w, http.StatusOK, data, common.NewMeta(r))
}

func (b base) created(w http.ResponseWriter, r *http.Request, data interface{}) {
	common.RespondWithMeta(w, http.StatusCreated, data, common.NewMeta(r))
}

func noContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
