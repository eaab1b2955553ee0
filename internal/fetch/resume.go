package fetch

import "context"

// ResumeSource resolves stored resume references (URLs) to plain text.
type ResumeSource struct {
	opts *Options
}

// NewResumeSource creates a resume text source with default fetch options.
func NewResumeSource() *ResumeSource {
	return &ResumeSource{opts: DefaultOptions()}
}

// ResumeText retrieves the resume at ref and returns its readable text.
func (s *ResumeSource) ResumeText(ctx context.Context, ref string) (string, error) {
	return Text(ctx, ref, s.opts)
}
