package inbound

import (
	"context"

	"github.com/designdynasty/authkit/internal/contact/usecase"
	"github.com/designdynasty/authkit/internal/pkg/router"
)

type uc interface {
	Submit(ctx context.Context, in usecase.SubmitInput) (*usecase.SubmitOutput, error)
	SubmitBrief(ctx context.Context, in usecase.SubmitBriefInput) (*usecase.SubmitBriefOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/contact", end.Submit)
	r.POST("/contact/brief", end.SubmitBrief)
}
