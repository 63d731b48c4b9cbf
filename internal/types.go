package internal

const translationErrorPrefix = "Deep-translator error: "

// UsageError reports a command line with the wrong number of arguments.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string {
	return e.Usage
}

// TranslationError wraps any failure raised by the translation provider.
// All provider failures are flattened into this one kind.
type TranslationError struct {
	Err error
}

func (e *TranslationError) Error() string {
	if e.Err == nil {
		return translationErrorPrefix + "unknown error"
	}
	return translationErrorPrefix + e.Err.Error()
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}
