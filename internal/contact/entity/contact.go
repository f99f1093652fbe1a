package entity

// MaxAttachmentBytes caps uploaded attachments.
const MaxAttachmentBytes = 1 << 20

// Attachment is a file uploaded with a submission.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Submission is a general contact form entry.
type Submission struct {
	Reference  string
	Name       string
	Email      string
	Mobile     string
	Message    string
	Attachment *Attachment
	LinkURL    string
}

// Brief is a project brief entry with scoping detail.
type Brief struct {
	Reference   string
	Name        string
	Email       string
	Mobile      string
	Company     string
	ProjectType string
	Budget      string
	Timeline    string
	Description string
	Attachment  *Attachment
	LinkURL     string
}
