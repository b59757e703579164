// internal/services/stream.go
package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/homewise/planner-backend/internal/llm"
	"github.com/homewise/planner-backend/internal/models"
)

// GeneratePlanStream runs the same flow as GeneratePlan but forwards the
// provider's narration to out chunk by chunk as it arrives. Once the
// provider finishes, everything after the sentinel is parsed as the
// selection, enriched, and the final Proposal JSON is written after a
// fresh sentinel line.
func (s *PlannerService) GeneratePlanStream(ctx context.Context, req *models.PlanRequest, overlay []models.Product, out func(chunk string) error) error {
	cat, prompt, err := s.prepare(req, overlay, true)
	if err != nil {
		return err
	}

	callCtx, cancel := s.callContext(ctx)
	defer cancel()

	splitter := &sentinelSplitter{sentinel: llm.StreamSentinel, forward: out}
	if err := s.client.GenerateStream(callCtx, prompt, splitter.feed); err != nil {
		return err
	}
	if err := splitter.flush(); err != nil {
		return err
	}

	sel, err := llm.ParseSelection(splitter.tail())
	if err != nil {
		return err
	}

	proposal, err := s.finishProposal(ctx, req, cat, sel)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(proposal)
	if err != nil {
		return err
	}
	return out("\n" + llm.StreamSentinel + "\n" + string(payload))
}

// sentinelSplitter forwards narration text up to the sentinel and keeps
// everything after it for parsing. The sentinel can arrive split across
// chunks, so up to len(sentinel)-1 trailing bytes are held back until the
// next chunk settles whether they start the marker.
type sentinelSplitter struct {
	sentinel string
	forward  func(chunk string) error

	buf       strings.Builder
	sent      int
	found     bool
	tailStart int
}

func (sp *sentinelSplitter) feed(chunk string) error {
	sp.buf.WriteString(chunk)
	if sp.found {
		return nil
	}

	s := sp.buf.String()
	if i := strings.Index(s, sp.sentinel); i != -1 {
		sp.found = true
		sp.tailStart = i + len(sp.sentinel)
		if i > sp.sent {
			if err := sp.forward(s[sp.sent:i]); err != nil {
				return err
			}
			sp.sent = i
		}
		return nil
	}

	safe := len(s) - len(sp.sentinel) + 1
	if safe > sp.sent {
		if err := sp.forward(s[sp.sent:safe]); err != nil {
			return err
		}
		sp.sent = safe
	}
	return nil
}

// flush forwards the held-back remainder once the stream ends. Only
// relevant when the marker never appeared; with a marker everything
// before it has already been forwarded.
func (sp *sentinelSplitter) flush() error {
	if sp.found {
		return nil
	}
	s := sp.buf.String()
	if len(s) > sp.sent {
		if err := sp.forward(s[sp.sent:]); err != nil {
			return err
		}
		sp.sent = len(s)
	}
	return nil
}

// tail returns the text after the sentinel, or the whole buffered output
// when the model never printed the marker.
func (sp *sentinelSplitter) tail() string {
	s := sp.buf.String()
	if sp.found {
		return s[sp.tailStart:]
	}
	return s
}
