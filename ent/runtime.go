// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/runforge/agentd/ent/run"
	"github.com/runforge/agentd/ent/runevent"
	"github.com/runforge/agentd/ent/schema"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	runFields := schema.Run{}.Fields()
	_ = runFields
	// runDescLastEventSeq is the schema descriptor for last_event_seq field.
	runDescLastEventSeq := runFields[7].Descriptor()
	// run.DefaultLastEventSeq holds the default value on creation for the last_event_seq field.
	run.DefaultLastEventSeq = runDescLastEventSeq.Default.(int)
	// runDescTurnSeq is the schema descriptor for turn_seq field.
	runDescTurnSeq := runFields[8].Descriptor()
	// run.DefaultTurnSeq holds the default value on creation for the turn_seq field.
	run.DefaultTurnSeq = runDescTurnSeq.Default.(int)
	// runDescCreatedAt is the schema descriptor for created_at field.
	runDescCreatedAt := runFields[13].Descriptor()
	// run.DefaultCreatedAt holds the default value on creation for the created_at field.
	run.DefaultCreatedAt = runDescCreatedAt.Default.(func() time.Time)
	runeventFields := schema.RunEvent{}.Fields()
	_ = runeventFields
	// runeventDescCreatedAt is the schema descriptor for created_at field.
	runeventDescCreatedAt := runeventFields[5].Descriptor()
	// runevent.DefaultCreatedAt holds the default value on creation for the created_at field.
	runevent.DefaultCreatedAt = runeventDescCreatedAt.Default.(func() time.Time)
}
