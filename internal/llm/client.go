package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
	"time"
)

// Part is one element of a user message. Exactly one of Text or Data is set;
// Data always travels with its MIMEType.
type Part struct {
	Text     string
	Data     []byte
	MIMEType string
}

// TextPart builds a text part.
func TextPart(text string) Part { return Part{Text: text} }

// ImagePart builds an inline binary part.
func ImagePart(data []byte, mimeType string) Part { return Part{Data: data, MIMEType: mimeType} }

// IsInline reports whether the part carries binary data.
func (p Part) IsInline() bool { return len(p.Data) > 0 }

// SendResponse holds the result of one conversational turn.
type SendResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// ChatClient opens conversations against a hosted model service.
type ChatClient interface {
	// StartChat creates a conversation bound to instruction for its whole life.
	StartChat(ctx context.Context, instruction string) (Conversation, error)

	// Provider names the backend, for logs.
	Provider() Provider
}

// Conversation is a stateful session that keeps context across turns.
// Implementations are not safe for concurrent Send calls.
type Conversation interface {
	// Send submits parts in order and returns the model's reply verbatim.
	Send(ctx context.Context, parts []Part) (*SendResponse, error)
}

// classifyError maps a transport or SDK error onto the package sentinels.
// Timeouts become ErrTimeout, unreachable hosts ErrUnavailable; caller
// cancellation is passed through unchanged.
func classifyError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrTimeout) || errors.Is(err, ErrUnavailable) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if isConnectionError(err) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrEmptyResponse):
		return "EMPTY"
	case errors.Is(err, ErrBadStatus):
		return "STATUS"
	case errors.Is(err, context.Canceled):
		return "CANCELED"
	default:
		return "UNKNOWN"
	}
}

// report sends a call event for a finished Send to observer.
func report(observer Observer, provider Provider, model string, parts []Part, start time.Time, err error) int64 {
	latency := time.Since(start).Milliseconds()
	withImage := false
	for _, p := range parts {
		if p.IsInline() {
			withImage = true
			break
		}
	}
	observer.OnCallComplete(LLMCallEvent{
		Provider:  provider,
		Model:     model,
		Parts:     len(parts),
		WithImage: withImage,
		LatencyMs: latency,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
	return latency
}
