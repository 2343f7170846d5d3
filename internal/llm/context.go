package llm

import "context"

// Call tags a model call so its log line can be matched to the generation
// that issued it.
type Call struct {
	Purpose   string
	RequestID string
}

type callKey struct{}

func WithCall(ctx context.Context, c Call) context.Context {
	return context.WithValue(ctx, callKey{}, c)
}

// CallFrom returns the tag attached to ctx. Purpose is "unknown" when the
// caller did not tag the call.
func CallFrom(ctx context.Context) Call {
	c, _ := ctx.Value(callKey{}).(Call)
	if c.Purpose == "" {
		c.Purpose = "unknown"
	}
	return c
}
