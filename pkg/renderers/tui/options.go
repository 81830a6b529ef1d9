package tui

// OutputFormat selects how collected answers are serialized.
type OutputFormat string

const (
	OutputFormatJSON           OutputFormat = "json"
	OutputFormatFormURLEncoded OutputFormat = "form"
)

// Option customises the renderer.
type Option func(*Renderer)

// WithPromptDriver swaps the prompt implementation, mainly for tests.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the serialization of collected answers.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		switch format {
		case OutputFormatJSON, OutputFormatFormURLEncoded:
			r.outputFormat = format
		}
	}
}

// WithMaxAttempts bounds how often a field is re-prompted after validation
// failures before the session errors out.
func WithMaxAttempts(attempts int) Option {
	return func(r *Renderer) {
		if attempts > 0 {
			r.maxAttempts = attempts
		}
	}
}
