package domain

import "time"

// Speaker identifies who authored a chat message.
type Speaker string

const (
	SpeakerUser Speaker = "user"
	SpeakerBot  Speaker = "bot"
)

// Message is a rendered chat line. Speech, when set, is what gets narrated
// instead of Text.
type Message struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
	Speech  string  `json:"speech,omitempty"`
}

// Spoken returns the text to narrate.
func (m Message) Spoken() string {
	if m.Speech != "" {
		return m.Speech
	}
	return m.Text
}

// CommandKind enumerates UI intents.
type CommandKind string

const (
	CommandStartFlow     CommandKind = "start_flow"
	CommandPickFlow      CommandKind = "pick_flow"
	CommandSelectSection CommandKind = "select_section"
	CommandAnswer        CommandKind = "answer"
	CommandOther         CommandKind = "other"
	CommandContinue      CommandKind = "continue"
	CommandSubmit        CommandKind = "submit"
	CommandListen        CommandKind = "listen"
)

// Command is a typed UI event consumed by the session controller.
type Command struct {
	Kind    CommandKind `json:"kind"`
	FlowID  string      `json:"flow_id,omitempty"`
	Section string      `json:"section,omitempty"`
	Answer  *Answer     `json:"answer,omitempty"`
	Text    string      `json:"text,omitempty"`
}

// StartFlowCommand starts a flow.
func StartFlowCommand(flowID string) Command {
	return Command{Kind: CommandStartFlow, FlowID: flowID}
}

// PickFlowCommand selects a flow from a section menu (asks for confirmation).
func PickFlowCommand(flowID string) Command {
	return Command{Kind: CommandPickFlow, FlowID: flowID}
}

// SelectSectionCommand opens a section menu.
func SelectSectionCommand(section string) Command {
	return Command{Kind: CommandSelectSection, Section: section}
}

// AnswerCommand confirms an answer category from a choice button.
func AnswerCommand(a Answer) Command {
	return Command{Kind: CommandAnswer, Answer: &a}
}

// OtherCommand switches to free-text answering.
func OtherCommand() Command {
	return Command{Kind: CommandOther}
}

// ContinueCommand acknowledges a narration.
func ContinueCommand() Command {
	return Command{Kind: CommandContinue}
}

// SubmitCommand routes typed or recognized text.
func SubmitCommand(text string) Command {
	return Command{Kind: CommandSubmit, Text: text}
}

// ListenCommand asks for one recognized utterance.
func ListenCommand() Command {
	return Command{Kind: CommandListen}
}

// Choice is one button of a choice row.
type Choice struct {
	Label   string  `json:"label"`
	Command Command `json:"command"`
}

// UIEventKind discriminates UIEvent payloads.
type UIEventKind string

const (
	UIEventMessage UIEventKind = "message"
	UIEventChoices UIEventKind = "choices"
)

// UIEvent is a serializable record of one UI effect, used by remote hosts.
type UIEvent struct {
	ID      string      `json:"id"`
	Kind    UIEventKind `json:"kind"`
	At      time.Time   `json:"at"`
	Message *Message    `json:"message,omitempty"`
	Prompt  string      `json:"prompt,omitempty"`
	Choices []Choice    `json:"choices,omitempty"`
}
