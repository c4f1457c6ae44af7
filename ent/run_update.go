// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/runforge/agentd/ent/predicate"
	"github.com/runforge/agentd/ent/run"
	"github.com/runforge/agentd/ent/runevent"
)

// RunUpdate is the builder for updating Run entities.
type RunUpdate struct {
	config
	hooks    []Hook
	mutation *RunMutation
}

// Where appends a list predicates to the RunUpdate builder.
func (_u *RunUpdate) Where(ps ...predicate.Run) *RunUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetBearerToken sets the "bearer_token" field.
func (_u *RunUpdate) SetBearerToken(v string) *RunUpdate {
	_u.mutation.SetBearerToken(v)
	return _u
}

// SetNillableBearerToken sets the "bearer_token" field if the given value is not nil.
func (_u *RunUpdate) SetNillableBearerToken(v *string) *RunUpdate {
	if v != nil {
		_u.SetBearerToken(*v)
	}
	return _u
}

// ClearBearerToken clears the value of the "bearer_token" field.
func (_u *RunUpdate) ClearBearerToken() *RunUpdate {
	_u.mutation.ClearBearerToken()
	return _u
}

// SetStatus sets the "status" field.
func (_u *RunUpdate) SetStatus(v run.Status) *RunUpdate {
	_u.mutation.SetStatus(v)
	return _u
}

// SetNillableStatus sets the "status" field if the given value is not nil.
func (_u *RunUpdate) SetNillableStatus(v *run.Status) *RunUpdate {
	if v != nil {
		_u.SetStatus(*v)
	}
	return _u
}

// SetLastEventSeq sets the "last_event_seq" field.
func (_u *RunUpdate) SetLastEventSeq(v int) *RunUpdate {
	_u.mutation.ResetLastEventSeq()
	_u.mutation.SetLastEventSeq(v)
	return _u
}

// SetNillableLastEventSeq sets the "last_event_seq" field if the given value is not nil.
func (_u *RunUpdate) SetNillableLastEventSeq(v *int) *RunUpdate {
	if v != nil {
		_u.SetLastEventSeq(*v)
	}
	return _u
}

// AddLastEventSeq adds value to the "last_event_seq" field.
func (_u *RunUpdate) AddLastEventSeq(v int) *RunUpdate {
	_u.mutation.AddLastEventSeq(v)
	return _u
}

// SetTurnSeq sets the "turn_seq" field.
func (_u *RunUpdate) SetTurnSeq(v int) *RunUpdate {
	_u.mutation.ResetTurnSeq()
	_u.mutation.SetTurnSeq(v)
	return _u
}

// SetNillableTurnSeq sets the "turn_seq" field if the given value is not nil.
func (_u *RunUpdate) SetNillableTurnSeq(v *int) *RunUpdate {
	if v != nil {
		_u.SetTurnSeq(*v)
	}
	return _u
}

// AddTurnSeq adds value to the "turn_seq" field.
func (_u *RunUpdate) AddTurnSeq(v int) *RunUpdate {
	_u.mutation.AddTurnSeq(v)
	return _u
}

// SetLatestOutput sets the "latest_output" field.
func (_u *RunUpdate) SetLatestOutput(v string) *RunUpdate {
	_u.mutation.SetLatestOutput(v)
	return _u
}

// SetNillableLatestOutput sets the "latest_output" field if the given value is not nil.
func (_u *RunUpdate) SetNillableLatestOutput(v *string) *RunUpdate {
	if v != nil {
		_u.SetLatestOutput(*v)
	}
	return _u
}

// ClearLatestOutput clears the value of the "latest_output" field.
func (_u *RunUpdate) ClearLatestOutput() *RunUpdate {
	_u.mutation.ClearLatestOutput()
	return _u
}

// SetLatestErrorCode sets the "latest_error_code" field.
func (_u *RunUpdate) SetLatestErrorCode(v string) *RunUpdate {
	_u.mutation.SetLatestErrorCode(v)
	return _u
}

// SetNillableLatestErrorCode sets the "latest_error_code" field if the given value is not nil.
func (_u *RunUpdate) SetNillableLatestErrorCode(v *string) *RunUpdate {
	if v != nil {
		_u.SetLatestErrorCode(*v)
	}
	return _u
}

// ClearLatestErrorCode clears the value of the "latest_error_code" field.
func (_u *RunUpdate) ClearLatestErrorCode() *RunUpdate {
	_u.mutation.ClearLatestErrorCode()
	return _u
}

// SetPodID sets the "pod_id" field.
func (_u *RunUpdate) SetPodID(v string) *RunUpdate {
	_u.mutation.SetPodID(v)
	return _u
}

// SetNillablePodID sets the "pod_id" field if the given value is not nil.
func (_u *RunUpdate) SetNillablePodID(v *string) *RunUpdate {
	if v != nil {
		_u.SetPodID(*v)
	}
	return _u
}

// ClearPodID clears the value of the "pod_id" field.
func (_u *RunUpdate) ClearPodID() *RunUpdate {
	_u.mutation.ClearPodID()
	return _u
}

// SetLastHeartbeatAt sets the "last_heartbeat_at" field.
func (_u *RunUpdate) SetLastHeartbeatAt(v time.Time) *RunUpdate {
	_u.mutation.SetLastHeartbeatAt(v)
	return _u
}

// SetNillableLastHeartbeatAt sets the "last_heartbeat_at" field if the given value is not nil.
func (_u *RunUpdate) SetNillableLastHeartbeatAt(v *time.Time) *RunUpdate {
	if v != nil {
		_u.SetLastHeartbeatAt(*v)
	}
	return _u
}

// ClearLastHeartbeatAt clears the value of the "last_heartbeat_at" field.
func (_u *RunUpdate) ClearLastHeartbeatAt() *RunUpdate {
	_u.mutation.ClearLastHeartbeatAt()
	return _u
}

// SetStartedAt sets the "started_at" field.
func (_u *RunUpdate) SetStartedAt(v time.Time) *RunUpdate {
	_u.mutation.SetStartedAt(v)
	return _u
}

// SetNillableStartedAt sets the "started_at" field if the given value is not nil.
func (_u *RunUpdate) SetNillableStartedAt(v *time.Time) *RunUpdate {
	if v != nil {
		_u.SetStartedAt(*v)
	}
	return _u
}

// ClearStartedAt clears the value of the "started_at" field.
func (_u *RunUpdate) ClearStartedAt() *RunUpdate {
	_u.mutation.ClearStartedAt()
	return _u
}

// SetCompletedAt sets the "completed_at" field.
func (_u *RunUpdate) SetCompletedAt(v time.Time) *RunUpdate {
	_u.mutation.SetCompletedAt(v)
	return _u
}

// SetNillableCompletedAt sets the "completed_at" field if the given value is not nil.
func (_u *RunUpdate) SetNillableCompletedAt(v *time.Time) *RunUpdate {
	if v != nil {
		_u.SetCompletedAt(*v)
	}
	return _u
}

// ClearCompletedAt clears the value of the "completed_at" field.
func (_u *RunUpdate) ClearCompletedAt() *RunUpdate {
	_u.mutation.ClearCompletedAt()
	return _u
}

// AddEventIDs adds the "events" edge to the RunEvent entity by IDs.
func (_u *RunUpdate) AddEventIDs(ids ...string) *RunUpdate {
	_u.mutation.AddEventIDs(ids...)
	return _u
}

// AddEvents adds the "events" edges to the RunEvent entity.
func (_u *RunUpdate) AddEvents(v ...*RunEvent) *RunUpdate {
	ids := make([]string, len(v))
	for i := range v {
		ids[i] = v[i].ID
	}
	return _u.AddEventIDs(ids...)
}

// Mutation returns the RunMutation object of the builder.
func (_u *RunUpdate) Mutation() *RunMutation {
	return _u.mutation
}

// ClearEvents clears all "events" edges to the RunEvent entity.
func (_u *RunUpdate) ClearEvents() *RunUpdate {
	_u.mutation.ClearEvents()
	return _u
}

// RemoveEventIDs removes the "events" edge to RunEvent entities by IDs.
func (_u *RunUpdate) RemoveEventIDs(ids ...string) *RunUpdate {
	_u.mutation.RemoveEventIDs(ids...)
	return _u
}

// RemoveEvents removes "events" edges to RunEvent entities.
func (_u *RunUpdate) RemoveEvents(v ...*RunEvent) *RunUpdate {
	ids := make([]string, len(v))
	for i := range v {
		ids[i] = v[i].ID
	}
	return _u.RemoveEventIDs(ids...)
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *RunUpdate) Save(ctx context.Context) (int, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *RunUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *RunUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *RunUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *RunUpdate) check() error {
	if v, ok := _u.mutation.Status(); ok {
		if err := run.StatusValidator(v); err != nil {
			return &ValidationError{Name: "status", err: fmt.Errorf(`ent: validator failed for field "Run.status": %w`, err)}
		}
	}
	return nil
}

func (_u *RunUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(run.Table, run.Columns, sqlgraph.NewFieldSpec(run.FieldID, field.TypeString))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if _u.mutation.ChatIDCleared() {
		_spec.ClearField(run.FieldChatID, field.TypeString)
	}
	if value, ok := _u.mutation.BearerToken(); ok {
		_spec.SetField(run.FieldBearerToken, field.TypeString, value)
	}
	if _u.mutation.BearerTokenCleared() {
		_spec.ClearField(run.FieldBearerToken, field.TypeString)
	}
	if value, ok := _u.mutation.Status(); ok {
		_spec.SetField(run.FieldStatus, field.TypeEnum, value)
	}
	if value, ok := _u.mutation.LastEventSeq(); ok {
		_spec.SetField(run.FieldLastEventSeq, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedLastEventSeq(); ok {
		_spec.AddField(run.FieldLastEventSeq, field.TypeInt, value)
	}
	if value, ok := _u.mutation.TurnSeq(); ok {
		_spec.SetField(run.FieldTurnSeq, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedTurnSeq(); ok {
		_spec.AddField(run.FieldTurnSeq, field.TypeInt, value)
	}
	if value, ok := _u.mutation.LatestOutput(); ok {
		_spec.SetField(run.FieldLatestOutput, field.TypeString, value)
	}
	if _u.mutation.LatestOutputCleared() {
		_spec.ClearField(run.FieldLatestOutput, field.TypeString)
	}
	if value, ok := _u.mutation.LatestErrorCode(); ok {
		_spec.SetField(run.FieldLatestErrorCode, field.TypeString, value)
	}
	if _u.mutation.LatestErrorCodeCleared() {
		_spec.ClearField(run.FieldLatestErrorCode, field.TypeString)
	}
	if value, ok := _u.mutation.PodID(); ok {
		_spec.SetField(run.FieldPodID, field.TypeString, value)
	}
	if _u.mutation.PodIDCleared() {
		_spec.ClearField(run.FieldPodID, field.TypeString)
	}
	if value, ok := _u.mutation.LastHeartbeatAt(); ok {
		_spec.SetField(run.FieldLastHeartbeatAt, field.TypeTime, value)
	}
	if _u.mutation.LastHeartbeatAtCleared() {
		_spec.ClearField(run.FieldLastHeartbeatAt, field.TypeTime)
	}
	if value, ok := _u.mutation.StartedAt(); ok {
		_spec.SetField(run.FieldStartedAt, field.TypeTime, value)
	}
	if _u.mutation.StartedAtCleared() {
		_spec.ClearField(run.FieldStartedAt, field.TypeTime)
	}
	if value, ok := _u.mutation.CompletedAt(); ok {
		_spec.SetField(run.FieldCompletedAt, field.TypeTime, value)
	}
	if _u.mutation.CompletedAtCleared() {
		_spec.ClearField(run.FieldCompletedAt, field.TypeTime)
	}
	if _u.mutation.EventsCleared() {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.O2M,
			Inverse: false,
			Table:   run.EventsTable,
			Columns: []string{run.EventsColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(runevent.FieldID, field.TypeString),
			},
		}
		_spec.Edges.Clear = append(_spec.Edges.Clear, edge)
	}
	if nodes := _u.mutation.RemovedEventsIDs(); len(nodes) > 0 && !_u.mutation.EventsCleared() {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.O2M,
			Inverse: false,
			Table:   run.EventsTable,
			Columns: []string{run.EventsColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(runevent.FieldID, field.TypeString),
			},
		}
		for _, k := range nodes {
			edge.Target.Nodes = append(edge.Target.Nodes, k)
		}
		_spec.Edges.Clear = append(_spec.Edges.Clear, edge)
	}
	if nodes := _u.mutation.EventsIDs(); len(nodes) > 0 {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.O2M,
			Inverse: false,
			Table:   run.EventsTable,
			Columns: []string{run.EventsColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(runevent.FieldID, field.TypeString),
			},
		}
		for _, k := range nodes {
			edge.Target.Nodes = append(edge.Target.Nodes, k)
		}
		_spec.Edges.Add = append(_spec.Edges.Add, edge)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{run.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// RunUpdateOne is the builder for updating a single Run entity.
type RunUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *RunMutation
}

// SetBearerToken sets the "bearer_token" field.
func (_u *RunUpdateOne) SetBearerToken(v string) *RunUpdateOne {
	_u.mutation.SetBearerToken(v)
	return _u
}

// SetNillableBearerToken sets the "bearer_token" field if the given value is not nil.
func (_u *RunUpdateOne) SetNillableBearerToken(v *string) *RunUpdateOne {
	if v != nil {
		_u.SetBearerToken(*v)
	}
	return _u
}

// ClearBearerToken clears the value of the "bearer_token" field.
func (_u *RunUpdateOne) ClearBearerToken() *RunUpdateOne {
	_u.mutation.ClearBearerToken()
	return _u
}

// SetStatus sets the "status" field.
func (_u *RunUpdateOne) SetStatus(v run.Status) *RunUpdateOne {
	_u.mutation.SetStatus(v)
	return _u
}

// SetNillableStatus sets the "status" field if the given value is not nil.
func (_u *RunUpdateOne) SetNillableStatus(v *run.Status) *RunUpdateOne {
	if v != nil {
		_u.SetStatus(*v)
	}
	return _u
}

// SetLastEventSeq sets the "last_event_seq" field.
func (_u *RunUpdateOne) SetLastEventSeq(v int) *RunUpdateOne {
	_u.mutation.ResetLastEventSeq()
	_u.mutation.SetLastEventSeq(v)
	return _u
}

// SetNillableLastEventSeq sets the "last_event_seq" field if the given value is not nil.
func (_u *RunUpdateOne) SetNillableLastEventSeq(v *int) *RunUpdateOne {
	if v != nil {
		_u.SetLastEventSeq(*v)
	}
	return _u
}

// AddLastEventSeq adds value to the "last_event_seq" field.
func (_u *RunUpdateOne) AddLastEventSeq(v int) *RunUpdateOne {
	_u.mutation.AddLastEventSeq(v)
	return _u
}

// SetTurnSeq sets the "turn_seq" field.
func (_u *RunUpdateOne) SetTurnSeq(v int) *RunUpdateOne {
	_u.mutation.ResetTurnSeq()
	_u.mutation.SetTurnSeq(v)
	return _u
}

// SetNillableTurnSeq sets the "turn_seq" field if the given value is not nil.
func (_u *RunUpdateOne) SetNillableTurnSeq(v *int) *RunUpdateOne {
	if v != nil {
		_u.SetTurnSeq(*v)
	}
	return _u
}

// AddTurnSeq adds value to the "turn_seq" field.
func (_u *RunUpdateOne) AddTurnSeq(v int) *RunUpdateOne {
	_u.mutation.AddTurnSeq(v)
	return _u
}

// SetLatestOutput sets the "latest_output" field.
func (_u *RunUpdateOne) SetLatestOutput(v string) *RunUpdateOne {
	_u.mutation.SetLatestOutput(v)
	return _u
}

// SetNillableLatestOutput sets the "latest_output" field if the given value is not nil.
func (_u *RunUpdateOne) SetNillableLatestOutput(v *string) *RunUpdateOne {
	if v != nil {
		_u.SetLatestOutput(*v)
	}
	return _u
}

// ClearLatestOutput clears the value of the "latest_output" field.
func (_u *RunUpdateOne) ClearLatestOutput() *RunUpdateOne {
	_u.mutation.ClearLatestOutput()
	return _u
}

// SetLatestErrorCode sets the "latest_error_code" field.
func (_u *RunUpdateOne) SetLatestErrorCode(v string) *RunUpdateOne {
	_u.mutation.SetLatestErrorCode(v)
	return _u
}

// SetNillableLatestErrorCode sets the "latest_error_code" field if the given value is not nil.
func (_u *RunUpdateOne) SetNillableLatestErrorCode(v *string) *RunUpdateOne {
	if v != nil {
		_u.SetLatestErrorCode(*v)
	}
	return _u
}

// ClearLatestErrorCode clears the value of the "latest_error_code" field.
func (_u *RunUpdateOne) ClearLatestErrorCode() *RunUpdateOne {
	_u.mutation.ClearLatestErrorCode()
	return _u
}

// SetPodID sets the "pod_id" field.
func (_u *RunUpdateOne) SetPodID(v string) *RunUpdateOne {
	_u.mutation.SetPodID(v)
	return _u
}

// SetNillablePodID sets the "pod_id" field if the given value is not nil.
func (_u *RunUpdateOne) SetNillablePodID(v *string) *RunUpdateOne {
	if v != nil {
		_u.SetPodID(*v)
	}
	return _u
}

// ClearPodID clears the value of the "pod_id" field.
func (_u *RunUpdateOne) ClearPodID() *RunUpdateOne {
	_u.mutation.ClearPodID()
	return _u
}

// SetLastHeartbeatAt sets the "last_heartbeat_at" field.
func (_u *RunUpdateOne) SetLastHeartbeatAt(v time.Time) *RunUpdateOne {
	_u.mutation.SetLastHeartbeatAt(v)
	return _u
}

// SetNillableLastHeartbeatAt sets the "last_heartbeat_at" field if the given value is not nil.
func (_u *RunUpdateOne) SetNillableLastHeartbeatAt(v *time.Time) *RunUpdateOne {
	if v != nil {
		_u.SetLastHeartbeatAt(*v)
	}
	return _u
}

// ClearLastHeartbeatAt clears the value of the "last_heartbeat_at" field.
func (_u *RunUpdateOne) ClearLastHeartbeatAt() *RunUpdateOne {
	_u.mutation.ClearLastHeartbeatAt()
	return _u
}

// SetStartedAt sets the "started_at" field.
func (_u *RunUpdateOne) SetStartedAt(v time.Time) *RunUpdateOne {
	_u.mutation.SetStartedAt(v)
	return _u
}

// SetNillableStartedAt sets the "started_at" field if the given value is not nil.
func (_u *RunUpdateOne) SetNillableStartedAt(v *time.Time) *RunUpdateOne {
	if v != nil {
		_u.SetStartedAt(*v)
	}
	return _u
}

// ClearStartedAt clears the value of the "started_at" field.
func (_u *RunUpdateOne) ClearStartedAt() *RunUpdateOne {
	_u.mutation.ClearStartedAt()
	return _u
}

// SetCompletedAt sets the "completed_at" field.
func (_u *RunUpdateOne) SetCompletedAt(v time.Time) *RunUpdateOne {
	_u.mutation.SetCompletedAt(v)
	return _u
}

// SetNillableCompletedAt sets the "completed_at" field if the given value is not nil.
func (_u *RunUpdateOne) SetNillableCompletedAt(v *time.Time) *RunUpdateOne {
	if v != nil {
		_u.SetCompletedAt(*v)
	}
	return _u
}

// ClearCompletedAt clears the value of the "completed_at" field.
func (_u *RunUpdateOne) ClearCompletedAt() *RunUpdateOne {
	_u.mutation.ClearCompletedAt()
	return _u
}

// AddEventIDs adds the "events" edge to the RunEvent entity by IDs.
func (_u *RunUpdateOne) AddEventIDs(ids ...string) *RunUpdateOne {
	_u.mutation.AddEventIDs(ids...)
	return _u
}

// AddEvents adds the "events" edges to the RunEvent entity.
func (_u *RunUpdateOne) AddEvents(v ...*RunEvent) *RunUpdateOne {
	ids := make([]string, len(v))
	for i := range v {
		ids[i] = v[i].ID
	}
	return _u.AddEventIDs(ids...)
}

// Mutation returns the RunMutation object of the builder.
func (_u *RunUpdateOne) Mutation() *RunMutation {
	return _u.mutation
}

// ClearEvents clears all "events" edges to the RunEvent entity.
func (_u *RunUpdateOne) ClearEvents() *RunUpdateOne {
	_u.mutation.ClearEvents()
	return _u
}

// RemoveEventIDs removes the "events" edge to RunEvent entities by IDs.
func (_u *RunUpdateOne) RemoveEventIDs(ids ...string) *RunUpdateOne {
	_u.mutation.RemoveEventIDs(ids...)
	return _u
}

// RemoveEvents removes "events" edges to RunEvent entities.
func (_u *RunUpdateOne) RemoveEvents(v ...*RunEvent) *RunUpdateOne {
	ids := make([]string, len(v))
	for i := range v {
		ids[i] = v[i].ID
	}
	return _u.RemoveEventIDs(ids...)
}

// Where appends a list predicates to the RunUpdate builder.
func (_u *RunUpdateOne) Where(ps ...predicate.Run) *RunUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *RunUpdateOne) Select(field string, fields ...string) *RunUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated Run entity.
func (_u *RunUpdateOne) Save(ctx context.Context) (*Run, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *RunUpdateOne) SaveX(ctx context.Context) *Run {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *RunUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *RunUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *RunUpdateOne) check() error {
	if v, ok := _u.mutation.Status(); ok {
		if err := run.StatusValidator(v); err != nil {
			return &ValidationError{Name: "status", err: fmt.Errorf(`ent: validator failed for field "Run.status": %w`, err)}
		}
	}
	return nil
}

func (_u *RunUpdateOne) sqlSave(ctx context.Context) (_node *Run, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(run.Table, run.Columns, sqlgraph.NewFieldSpec(run.FieldID, field.TypeString))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "Run.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, run.FieldID)
		for _, f := range fields {
			if !run.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != run.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if _u.mutation.ChatIDCleared() {
		_spec.ClearField(run.FieldChatID, field.TypeString)
	}
	if value, ok := _u.mutation.BearerToken(); ok {
		_spec.SetField(run.FieldBearerToken, field.TypeString, value)
	}
	if _u.mutation.BearerTokenCleared() {
		_spec.ClearField(run.FieldBearerToken, field.TypeString)
	}
	if value, ok := _u.mutation.Status(); ok {
		_spec.SetField(run.FieldStatus, field.TypeEnum, value)
	}
	if value, ok := _u.mutation.LastEventSeq(); ok {
		_spec.SetField(run.FieldLastEventSeq, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedLastEventSeq(); ok {
		_spec.AddField(run.FieldLastEventSeq, field.TypeInt, value)
	}
	if value, ok := _u.mutation.TurnSeq(); ok {
		_spec.SetField(run.FieldTurnSeq, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedTurnSeq(); ok {
		_spec.AddField(run.FieldTurnSeq, field.TypeInt, value)
	}
	if value, ok := _u.mutation.LatestOutput(); ok {
		_spec.SetField(run.FieldLatestOutput, field.TypeString, value)
	}
	if _u.mutation.LatestOutputCleared() {
		_spec.ClearField(run.FieldLatestOutput, field.TypeString)
	}
	if value, ok := _u.mutation.LatestErrorCode(); ok {
		_spec.SetField(run.FieldLatestErrorCode, field.TypeString, value)
	}
	if _u.mutation.LatestErrorCodeCleared() {
		_spec.ClearField(run.FieldLatestErrorCode, field.TypeString)
	}
	if value, ok := _u.mutation.PodID(); ok {
		_spec.SetField(run.FieldPodID, field.TypeString, value)
	}
	if _u.mutation.PodIDCleared() {
		_spec.ClearField(run.FieldPodID, field.TypeString)
	}
	if value, ok := _u.mutation.LastHeartbeatAt(); ok {
		_spec.SetField(run.FieldLastHeartbeatAt, field.TypeTime, value)
	}
	if _u.mutation.LastHeartbeatAtCleared() {
		_spec.ClearField(run.FieldLastHeartbeatAt, field.TypeTime)
	}
	if value, ok := _u.mutation.StartedAt(); ok {
		_spec.SetField(run.FieldStartedAt, field.TypeTime, value)
	}
	if _u.mutation.StartedAtCleared() {
		_spec.ClearField(run.FieldStartedAt, field.TypeTime)
	}
	if value, ok := _u.mutation.CompletedAt(); ok {
		_spec.SetField(run.FieldCompletedAt, field.TypeTime, value)
	}
	if _u.mutation.CompletedAtCleared() {
		_spec.ClearField(run.FieldCompletedAt, field.TypeTime)
	}
	if _u.mutation.EventsCleared() {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.O2M,
			Inverse: false,
			Table:   run.EventsTable,
			Columns: []string{run.EventsColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(runevent.FieldID, field.TypeString),
			},
		}
		_spec.Edges.Clear = append(_spec.Edges.Clear, edge)
	}
	if nodes := _u.mutation.RemovedEventsIDs(); len(nodes) > 0 && !_u.mutation.EventsCleared() {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.O2M,
			Inverse: false,
			Table:   run.EventsTable,
			Columns: []string{run.EventsColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(runevent.FieldID, field.TypeString),
			},
		}
		for _, k := range nodes {
			edge.Target.Nodes = append(edge.Target.Nodes, k)
		}
		_spec.Edges.Clear = append(_spec.Edges.Clear, edge)
	}
	if nodes := _u.mutation.EventsIDs(); len(nodes) > 0 {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.O2M,
			Inverse: false,
			Table:   run.EventsTable,
			Columns: []string{run.EventsColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(runevent.FieldID, field.TypeString),
			},
		}
		for _, k := range nodes {
			edge.Target.Nodes = append(edge.Target.Nodes, k)
		}
		_spec.Edges.Add = append(_spec.Edges.Add, edge)
	}
	_node = &Run{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{run.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
