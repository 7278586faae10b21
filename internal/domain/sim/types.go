package sim

import "github.com/google/uuid"

type ActorKind string

const (
	ActorPlayer ActorKind = "player"
	ActorNPC    ActorKind = "npc"
)

// Actor holds identity metadata for an entity in the world. Location and
// per-actor resources live in WorldState so that Actor values stay immutable.
type Actor struct {
	ID          string
	DisplayName string
	Kind        ActorKind
	OwnedRooms  map[string]bool
	Permissions map[string]bool
}

func (a Actor) Owns(roomID string) bool {
	return a.OwnedRooms[roomID]
}

func (a Actor) Can(permission string) bool {
	return a.Permissions[permission]
}

// Event is the only durable evidence of engine behavior. Ordering is append
// order; the id is unique but carries no ordering meaning.
type Event struct {
	ID      string         `json:"id"`
	Turn    int            `json:"turn"`
	Actor   string         `json:"actor"`
	Type    string         `json:"type"`
	Args    map[string]any `json:"args,omitempty"`
	OK      bool           `json:"ok"`
	Message string         `json:"message,omitempty"`
}

func NewEvent(turn int, actor, eventType string, args map[string]any, ok bool, message string) Event {
	if args == nil {
		args = map[string]any{}
	}
	return Event{
		ID:      uuid.NewString(),
		Turn:    turn,
		Actor:   actor,
		Type:    eventType,
		Args:    args,
		OK:      ok,
		Message: message,
	}
}

// ToolResult is the dispatch-level outcome of one tool invocation.
// ConsumeTurn defaults to true: most actions spend the actor's sub-turn,
// conversation sub-loop tools opt out.
type ToolResult struct {
	OK          bool           `json:"ok"`
	Message     string         `json:"message"`
	Events      []Event        `json:"events,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
	ConsumeTurn bool           `json:"consume_turn"`
}

func Success(message string, events ...Event) ToolResult {
	return ToolResult{OK: true, Message: message, Events: events, ConsumeTurn: true}
}

func Fail(message string) ToolResult {
	return ToolResult{OK: false, Message: message, ConsumeTurn: true}
}

func (r ToolResult) WithData(key string, value any) ToolResult {
	data := make(map[string]any, len(r.Data)+1)
	for k, v := range r.Data {
		data[k] = v
	}
	data[key] = value
	r.Data = data
	return r
}

func (r ToolResult) KeepTurn() ToolResult {
	r.ConsumeTurn = false
	return r
}

type InteractionKind string

const (
	KindTalk        InteractionKind = "talk"
	KindTaskRequest InteractionKind = "task_request"
)

type InteractionStatus string

const (
	StatusPending  InteractionStatus = "pending"
	StatusActive   InteractionStatus = "active"
	StatusDeclined InteractionStatus = "declined"
	StatusClosed   InteractionStatus = "closed"
)

// Message is one utterance inside an active talk.
type Message struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
	Turn    int    `json:"turn"`
}

// TaskPayload carries the chore a task_request asks the target to perform.
type TaskPayload struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}

// Interaction is a stateful, id-addressed exchange layered on top of the
// per-actor turn sequence. Terminal statuses (closed, declined) are final.
type Interaction struct {
	ID          string            `json:"id"`
	Kind        InteractionKind   `json:"kind"`
	Initiator   string            `json:"initiator"`
	Target      string            `json:"target"`
	RoomID      string            `json:"room_id"`
	Status      InteractionStatus `json:"status"`
	CreatedTurn int               `json:"created_turn"`
	StartedTurn *int              `json:"started_turn,omitempty"`
	EndedTurn   *int              `json:"ended_turn,omitempty"`
	EndedBy     string            `json:"ended_by,omitempty"`
	EndedReason string            `json:"ended_reason,omitempty"`

	Task *TaskPayload `json:"task,omitempty"`

	// Talk mechanics. One exchange is a back-and-forth, two utterances.
	MaxExchanges int       `json:"max_exchanges,omitempty"`
	Messages     []Message `json:"messages,omitempty"`
}

func (i Interaction) Utterances() int {
	return len(i.Messages)
}

func (i Interaction) ExchangesUsed() int {
	return i.Utterances() / 2
}

func (i Interaction) MaxUtterances() int {
	if i.MaxExchanges < 0 {
		return 0
	}
	return i.MaxExchanges * 2
}

func (i Interaction) Terminal() bool {
	return i.Status == StatusClosed || i.Status == StatusDeclined
}

func (i Interaction) Participant(actor string) bool {
	return actor == i.Initiator || actor == i.Target
}
