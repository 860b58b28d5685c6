package inbound

import (
	"github.com/shandysiswandi/goproof/internal/passcode/entity"
	"github.com/shandysiswandi/goproof/internal/passcode/usecase"
	"github.com/shandysiswandi/goproof/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for issuing and verifying passcodes.
type HTTPEndpoint struct {
	uc uc
}

// Issue requests a fresh passcode for an owner and email address.
func (h *HTTPEndpoint) Issue(r *router.Request) (any, error) {
	var req IssueRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if _, err := h.uc.Issue(r.Context(), usecase.IssueInput{
		OwnerID: req.OwnerID,
		Email:   req.Email,
		Purpose: entity.PurposeFromString(req.Purpose),
	}); err != nil {
		return nil, err
	}

	return IssueResponse{}, nil
}

// Verify redeems a passcode the owner received by email.
func (h *HTTPEndpoint) Verify(r *router.Request) (any, error) {
	var req VerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Verify(r.Context(), usecase.VerifyInput{
		OwnerID: req.OwnerID,
		Code:    req.Code,
		Purpose: entity.PurposeFromString(req.Purpose),
	})
	if err != nil {
		return nil, err
	}

	return VerifyResponse{
		Purpose:    resp.Purpose.String(),
		VerifiedAt: resp.VerifiedAt,
	}, nil
}
