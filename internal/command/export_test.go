package command

// Hooks for the external test package.
var (
	TryNumericAnswer  = tryNumericAnswer
	StripCommandToken = stripCommandToken
)
