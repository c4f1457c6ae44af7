package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Run holds the schema definition for the Run entity: one agent execution
// session with an append-only event journal.
type Run struct {
	ent.Schema
}

// Fields of the Run.
func (Run) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("run_id").
			Unique().
			Immutable(),
		field.String("project_id").
			Immutable().
			Comment("Downstream agent service project"),
		field.String("owner_id").
			Immutable().
			Comment("Caller identity from the auth proxy"),
		field.String("chat_id").
			Optional().
			Nillable().
			Immutable(),
		field.Text("user_message").
			Immutable().
			Comment("Turn input; persisted so any pod can claim the queued run"),
		field.String("bearer_token").
			Optional().
			Nillable().
			Sensitive().
			Comment("Upstream pass-through credential; cleared on terminal transition"),
		field.Enum("status").
			Values("queued", "running", "completed", "failed", "timeout", "cancelled").
			Default("queued"),
		field.Int("last_event_seq").
			Default(0).
			Comment("Journal watermark; event seqs are exactly 1..last_event_seq"),
		field.Int("turn_seq").
			Default(0).
			Comment("Seq of the active turn; 0 until a worker starts one"),
		field.Text("latest_output").
			Optional().
			Nillable().
			Comment("Final assistant message from a completion-bearing event"),
		field.String("latest_error_code").
			Optional().
			Nillable().
			Comment("e.g. AGENT_TIMEOUT, AGENT_UPSTREAM_401, AGENT_LEASE_LOST"),
		field.String("pod_id").
			Optional().
			Nillable().
			Comment("For multi-replica coordination"),
		field.Time("last_heartbeat_at").
			Optional().
			Nillable().
			Comment("Bumped by the lease refresher; drives orphan detection"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Time("started_at").
			Optional().
			Nillable().
			Comment("When the worker transitioned the run to running"),
		field.Time("completed_at").
			Optional().
			Nillable(),
	}
}

// Edges of the Run.
func (Run) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("events", RunEvent.Type).
			Annotations(entsql.OnDelete(entsql.Cascade)),
	}
}

// Indexes of the Run.
func (Run) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("status"),
		index.Fields("project_id"),

		// Queue poll (FIFO over queued runs)
		index.Fields("status", "created_at"),
		// Orphan detection scan
		index.Fields("status", "last_heartbeat_at"),
	}
}
