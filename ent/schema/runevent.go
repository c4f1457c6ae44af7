package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// RunEvent holds the schema definition for the RunEvent entity: one journaled
// event of a run. Events are immutable once written.
type RunEvent struct {
	ent.Schema
}

// Fields of the RunEvent.
func (RunEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("event_id").
			Unique().
			Immutable(),
		field.String("run_id").
			Immutable(),
		field.Int("seq").
			Immutable().
			Comment("Dense per-run sequence starting at 1"),
		field.String("event_type").
			Immutable().
			Comment("Upstream type (assistant.delta, assistant.message, ...) or terminal marker (run.completed, ...)"),
		field.JSON("payload", map[string]interface{}{}).
			Immutable().
			Comment("Opaque event body as received from upstream"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

// Edges of the RunEvent.
func (RunEvent) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("run", Run.Type).
			Ref("events").
			Field("run_id").
			Unique().
			Required().
			Immutable(),
	}
}

// Indexes of the RunEvent.
func (RunEvent) Indexes() []ent.Index {
	return []ent.Index{
		// Append guard: at most one event per (run, seq). The optimistic
		// append in RunService relies on this unique constraint.
		index.Fields("run_id", "seq").
			Unique(),
	}
}
