package prompt

import "context"

// ModelConnector is the single upstream contract: one instruction block, one
// content block, one raw text completion back. No retries happen behind it;
// whatever comes back is handled or replaced by a fallback.
type ModelConnector interface {
	Complete(ctx context.Context, instructions, content string) (string, error)
}
