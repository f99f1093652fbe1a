package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/designdynasty/authkit/internal/contact/entity"
	"github.com/designdynasty/authkit/internal/pkg/goerror"
)

type SubmitInput struct {
	Name       string `validate:"required,min=2,max=100"`
	Email      string `validate:"required,email"`
	Mobile     string `validate:"required,min=7,max=15"`
	Message    string `validate:"required,min=10,max=5000"`
	Attachment *entity.Attachment
}

type SubmitOutput struct {
	Reference string
}

func (s *Usecase) Submit(ctx context.Context, in SubmitInput) (*SubmitOutput, error) {
	ctx, span := s.startSpan(ctx, "Submit")
	defer span.End()

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}
	if in.Attachment != nil && len(in.Attachment.Content) > entity.MaxAttachmentBytes {
		return nil, goerror.NewBusiness("Attachment exceeds the maximum allowed size", goerror.CodeInvalidInput)
	}

	reference := s.reference()

	err := s.guardDuplicate(ctx, dedupeKey(in.Email, in.Message), func(ctx context.Context) error {
		sub := entity.Submission{
			Reference:  reference,
			Name:       in.Name,
			Email:      in.Email,
			Mobile:     in.Mobile,
			Message:    in.Message,
			Attachment: in.Attachment,
			LinkURL:    s.uploadAttachment(ctx, reference, in.Attachment),
		}

		if err := s.repoEmail.RelaySubmission(ctx, sub); err != nil {
			slog.ErrorContext(ctx, "failed to relay contact submission", "reference", reference, "error", err)
			return goerror.NewDelivery(err, "Failed to deliver your message, please try again")
		}

		// The relay already succeeded; a lost acknowledgement is logged only.
		if err := s.repoEmail.AckSender(ctx, in.Email, in.Name, reference); err != nil {
			slog.WarnContext(ctx, "failed to acknowledge contact sender", "reference", reference, "error", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &SubmitOutput{Reference: reference}, nil
}
