package agui

import (
	"iter"

	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	sb "github.com/spetersoncode/switchboard"
)

// Mapper converts switchboard chat stream items to AG-UI events.
//
// Text arrives as a Start-Content-End sequence: the first item with content
// opens a message and Finish or an error closes it. Items with only
// reasoning, usage or a finish reason produce no events.
//
// Create a new Mapper for each run using NewMapper. The Mapper is not
// safe for concurrent use.
type Mapper struct {
	threadID  string
	runID     string
	messageID string
}

// NewMapper creates a new Mapper for a single run.
// The threadID and runID are used in lifecycle events (RUN_STARTED, RUN_FINISHED).
func NewMapper(threadID, runID string) *Mapper {
	if threadID == "" {
		threadID = events.GenerateThreadID()
	}
	if runID == "" {
		runID = events.GenerateRunID()
	}
	return &Mapper{
		threadID: threadID,
		runID:    runID,
	}
}

// ThreadID returns the thread ID for this mapper.
func (m *Mapper) ThreadID() string {
	return m.threadID
}

// RunID returns the run ID for this mapper.
func (m *Mapper) RunID() string {
	return m.runID
}

// RunStarted returns a RUN_STARTED event.
func (m *Mapper) RunStarted() events.Event {
	return events.NewRunStartedEvent(m.threadID, m.runID)
}

// RunFinished returns a RUN_FINISHED event.
func (m *Mapper) RunFinished() events.Event {
	return events.NewRunFinishedEvent(m.threadID, m.runID)
}

// RunError returns a RUN_ERROR event. Classified errors are prefixed with
// their category.
func (m *Mapper) RunError(err error) events.Event {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
		if cat := sb.CategoryOf(err); cat != "" {
			msg = string(cat) + ": " + msg
		}
	}
	return events.NewRunErrorEvent(msg)
}

// MapItem converts one stream item. A failed item closes any open message
// and yields RUN_ERROR, which ends the run.
func (m *Mapper) MapItem(item sb.ChatCompletionMessage, err error) []events.Event {
	if err != nil {
		return append(m.closeMessage(), m.RunError(err))
	}
	if item.Content == "" {
		return nil
	}

	var out []events.Event
	if m.messageID == "" {
		m.messageID = events.GenerateMessageID()
		out = append(out, events.NewTextMessageStartEvent(m.messageID, events.WithRole(RoleAssistant)))
	}
	return append(out, events.NewTextMessageContentEvent(m.messageID, item.Content))
}

// Finish closes any open message and returns RUN_FINISHED.
func (m *Mapper) Finish() []events.Event {
	return append(m.closeMessage(), m.RunFinished())
}

func (m *Mapper) closeMessage() []events.Event {
	if m.messageID == "" {
		return nil
	}
	ev := events.NewTextMessageEndEvent(m.messageID)
	m.messageID = ""
	return []events.Event{ev}
}

// MapStream converts a whole chat stream into a run: RUN_STARTED, the text
// message events, then RUN_FINISHED, or RUN_ERROR at the first failed item.
// The stream is closed when the sequence ends.
func (m *Mapper) MapStream(stream *sb.Stream[sb.ChatCompletionMessage]) iter.Seq[events.Event] {
	return func(yield func(events.Event) bool) {
		defer stream.Close()

		if !yield(m.RunStarted()) {
			return
		}
		for item, err := range stream.All() {
			for _, ev := range m.MapItem(item, err) {
				if !yield(ev) {
					return
				}
			}
			if err != nil {
				return
			}
		}
		for _, ev := range m.Finish() {
			if !yield(ev) {
				return
			}
		}
	}
}
