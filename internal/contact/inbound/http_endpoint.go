package inbound

import (
	"github.com/designdynasty/authkit/internal/contact/entity"
	"github.com/designdynasty/authkit/internal/contact/usecase"
	"github.com/designdynasty/authkit/internal/pkg/router"
)

// HTTPEndpoint exposes the public contact form handlers. Both accept
// multipart form data with an optional attachment.
type HTTPEndpoint struct {
	uc uc
}

func formAttachment(r *router.Request) (*entity.Attachment, error) {
	content, filename, contentType, err := r.FormFile("attachment", entity.MaxAttachmentBytes)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}
	return &entity.Attachment{
		Filename:    filename,
		ContentType: contentType,
		Content:     content,
	}, nil
}

// Submit relays a general contact message to the site owner.
func (h *HTTPEndpoint) Submit(r *router.Request) (any, error) {
	att, err := formAttachment(r)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Submit(r.Context(), usecase.SubmitInput{
		Name:       r.GetForm("name"),
		Email:      r.GetForm("email"),
		Mobile:     r.GetForm("mobile"),
		Message:    r.GetForm("message"),
		Attachment: att,
	})
	if err != nil {
		return nil, err
	}

	return SubmitResponse{Reference: resp.Reference}, nil
}

// SubmitBrief relays a project brief to the site owner.
func (h *HTTPEndpoint) SubmitBrief(r *router.Request) (any, error) {
	att, err := formAttachment(r)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.SubmitBrief(r.Context(), usecase.SubmitBriefInput{
		Name:        r.GetForm("name"),
		Email:       r.GetForm("email"),
		Mobile:      r.GetForm("mobile"),
		Company:     r.GetForm("company"),
		ProjectType: r.GetForm("projectType"),
		Budget:      r.GetForm("budget"),
		Timeline:    r.GetForm("timeline"),
		Description: r.GetForm("description"),
		Attachment:  att,
	})
	if err != nil {
		return nil, err
	}

	return SubmitBriefResponse{Reference: resp.Reference}, nil
}
