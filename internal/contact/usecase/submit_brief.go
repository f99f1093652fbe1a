package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/designdynasty/authkit/internal/contact/entity"
	"github.com/designdynasty/authkit/internal/pkg/goerror"
)

type SubmitBriefInput struct {
	Name        string `validate:"required,min=2,max=100"`
	Email       string `validate:"required,email"`
	Mobile      string `validate:"required,min=7,max=15"`
	Company     string `validate:"max=200"`
	ProjectType string `validate:"required,max=100"`
	Budget      string `validate:"max=100"`
	Timeline    string `validate:"max=100"`
	Description string `validate:"required,min=10,max=10000"`
	Attachment  *entity.Attachment
}

type SubmitBriefOutput struct {
	Reference string
}

func (s *Usecase) SubmitBrief(ctx context.Context, in SubmitBriefInput) (*SubmitBriefOutput, error) {
	ctx, span := s.startSpan(ctx, "SubmitBrief")
	defer span.End()

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}
	if in.Attachment != nil && len(in.Attachment.Content) > entity.MaxAttachmentBytes {
		return nil, goerror.NewBusiness("Attachment exceeds the maximum allowed size", goerror.CodeInvalidInput)
	}

	reference := s.reference()

	err := s.guardDuplicate(ctx, dedupeKey(in.Email, in.ProjectType, in.Description), func(ctx context.Context) error {
		brief := entity.Brief{
			Reference:   reference,
			Name:        in.Name,
			Email:       in.Email,
			Mobile:      in.Mobile,
			Company:     in.Company,
			ProjectType: in.ProjectType,
			Budget:      in.Budget,
			Timeline:    in.Timeline,
			Description: in.Description,
			Attachment:  in.Attachment,
			LinkURL:     s.uploadAttachment(ctx, reference, in.Attachment),
		}

		if err := s.repoEmail.RelayBrief(ctx, brief); err != nil {
			slog.ErrorContext(ctx, "failed to relay project brief", "reference", reference, "error", err)
			return goerror.NewDelivery(err, "Failed to deliver your brief, please try again")
		}

		if err := s.repoEmail.AckSender(ctx, in.Email, in.Name, reference); err != nil {
			slog.WarnContext(ctx, "failed to acknowledge brief sender", "reference", reference, "error", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &SubmitBriefOutput{Reference: reference}, nil
}
