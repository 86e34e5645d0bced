package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *PublishError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *PublishError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

func ValidationFailed(field, reason string) *PublishError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Pipeline errors

func StagingError(operation string, cause error) *PublishError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "staging operation failed").
		WithContext("operation", operation)
}

func GeneratorError(command string, cause error) *PublishError {
	return Wrap(cause, CategoryGenerator, SeverityFatal, "generator command failed").
		WithContext("command", command)
}

// Git errors

func GitCloneError(url string, cause error) *PublishError {
	return Wrap(cause, CategoryGit, SeverityFatal, "clone failed").
		WithContext("url", url)
}

func GitAuthError(url string, cause error) *PublishError {
	return Wrap(cause, CategoryAuth, SeverityFatal, "git authentication failed").
		WithContext("url", url)
}

// Content errors

func ContentError(path string, cause error) *PublishError {
	return Wrap(cause, CategoryContent, SeverityError, "content parse failed").
		WithContext("path", path)
}
