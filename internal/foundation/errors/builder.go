package errors

// ErrorBuilder provides a fluent API for creating ClassifiedError instances.
type ErrorBuilder struct {
	err ClassifiedError
}

// NewError starts a ClassifiedError of the given category.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{err: ClassifiedError{category: category, message: message}}
}

// WrapError starts a ClassifiedError whose cause is err.
func WrapError(err error, category ErrorCategory, message string) *ErrorBuilder {
	return NewError(category, message).WithCause(err)
}

// WithCause sets the wrapped error.
func (b *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	b.err.cause = err
	return b
}

// WithContext adds a context key-value pair.
func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.err.context = b.err.context.Set(key, value)
	return b
}

// Build returns the error. The builder must not be reused afterwards.
func (b *ErrorBuilder) Build() *ClassifiedError {
	built := b.err
	return &built
}

// AssertionError records a failed assertion. It fails the document without aborting the routine.
func AssertionError(message string) *ErrorBuilder { return NewError(CategoryAssertion, message) }

// LookupError reports a reference to a code block that was never sealed.
func LookupError(message string) *ErrorBuilder { return NewError(CategoryLookup, message) }

// GuardError reports an unbalanced guard scope.
func GuardError(message string) *ErrorBuilder { return NewError(CategoryGuard, message) }

// CaptureError reports misuse of the code-block recorder.
func CaptureError(message string) *ErrorBuilder { return NewError(CategoryCapture, message) }

// NotFoundError reports a missing document, resource or block.
func NotFoundError(message string) *ErrorBuilder { return NewError(CategoryNotFound, message) }

// AlreadyExistsError reports a duplicate registration.
func AlreadyExistsError(message string) *ErrorBuilder {
	return NewError(CategoryAlreadyExists, message)
}

func ConfigError(message string) *ErrorBuilder     { return NewError(CategoryConfig, message) }
func ValidationError(message string) *ErrorBuilder { return NewError(CategoryValidation, message) }
func FileSystemError(message string) *ErrorBuilder { return NewError(CategoryFileSystem, message) }
func InternalError(message string) *ErrorBuilder   { return NewError(CategoryInternal, message) }
