package pranthora

// Ptr returns a pointer to v. Useful for optional struct fields:
//
//	params := pranthora.UpdateAgentParams{
//		SystemPrompt: pranthora.Ptr("Keep answers short."),
//	}
func Ptr[T any](v T) *T { return &v }
