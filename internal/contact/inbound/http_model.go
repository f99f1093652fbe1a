package inbound

type SubmitResponse struct {
	Reference string `json:"reference"`
}

func (SubmitResponse) Message() string {
	return "Your message has been sent. We will get back to you shortly."
}

type SubmitBriefResponse struct {
	Reference string `json:"reference"`
}

func (SubmitBriefResponse) Message() string {
	return "Your project brief has been sent. We will get back to you shortly."
}
