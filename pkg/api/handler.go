/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/NVIDIA/discovery-preflight/pkg/defaults"
	apperrors "github.com/NVIDIA/discovery-preflight/pkg/errors"
	"github.com/NVIDIA/discovery-preflight/pkg/serializer"
	"github.com/NVIDIA/discovery-preflight/pkg/server"
	pipeline "github.com/NVIDIA/discovery-preflight/pkg/validator"
)

// ValidateRequest is the body of POST /v1/validate.
type ValidateRequest struct {
	ProjectDir string `json:"projectDir" validate:"required"`
	// DryRun overrides the configured dry run setting when set.
	DryRun *bool `json:"dryRun,omitempty"`
}

// ValidateHandler serves validation runs. Every request builds its own
// pipeline from the base options, so runs share only what the options
// share (the host table synchronizer in particular).
type ValidateHandler struct {
	opts     []pipeline.Option
	validate *validator.Validate
}

// NewValidateHandler returns a handler that runs the pipeline with opts.
func NewValidateHandler(opts ...pipeline.Option) *ValidateHandler {
	return &ValidateHandler{
		opts:     opts,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// HandleValidate handles POST /v1/validate. A completed run is always
// answered with 200 and the Result; callers inspect Result.State.
func (h *ValidateHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		server.WriteError(w, r, http.StatusMethodNotAllowed, apperrors.ErrCodeMethodNotAllowed,
			fmt.Sprintf("method %s not allowed", r.Method), false, nil)
		return
	}

	var req ValidateRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		server.WriteErrorFromErr(w, r,
			apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid request body", err), "invalid request body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		server.WriteErrorFromErr(w, r,
			apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "projectDir is required", err), "invalid request", nil)
		return
	}

	opts := append([]pipeline.Option{}, h.opts...)
	if req.DryRun != nil {
		opts = append(opts, pipeline.WithDryRun(*req.DryRun))
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.ValidateHandlerTimeout)
	defer cancel()

	res, err := pipeline.New(opts...).Run(ctx, req.ProjectDir)
	if err != nil {
		slog.Warn("validation aborted", "project", req.ProjectDir, "error", err)
		server.WriteErrorFromErr(w, r, abortError(err), "validation aborted", nil)
		return
	}

	slog.Info("validation completed",
		"requestID", server.RequestID(r.Context()),
		"project", req.ProjectDir,
		"state", res.State,
		"errors", res.Summary.Errors)

	serializer.RespondJSON(w, http.StatusOK, res)
}

// abortError classifies an error from an aborted run. A deadline is a
// timeout; a canceled request means the client went away or the server is
// shutting down.
func abortError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Wrap(apperrors.ErrCodeTimeout, "validation timed out", err)
	case pipeline.IsCanceled(err):
		return apperrors.Wrap(apperrors.ErrCodeUnavailable, "validation canceled", err)
	default:
		return apperrors.Wrap(apperrors.ErrCodeInternal, "validation failed", err)
	}
}
