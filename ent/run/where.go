// Code generated by ent, DO NOT EDIT.

package run

import (
	"time"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"github.com/runforge/agentd/ent/predicate"
)

// ID filters vertices based on their ID field.
func ID(id string) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldID, id))
}

// IDEQ applies the EQ predicate on the ID field.
func IDEQ(id string) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldID, id))
}

// IDNEQ applies the NEQ predicate on the ID field.
func IDNEQ(id string) predicate.Run {
	return predicate.Run(sql.FieldNEQ(FieldID, id))
}

// IDIn applies the In predicate on the ID field.
func IDIn(ids ...string) predicate.Run {
	return predicate.Run(sql.FieldIn(FieldID, ids...))
}

// IDNotIn applies the NotIn predicate on the ID field.
func IDNotIn(ids ...string) predicate.Run {
	return predicate.Run(sql.FieldNotIn(FieldID, ids...))
}

// IDGT applies the GT predicate on the ID field.
func IDGT(id string) predicate.Run {
	return predicate.Run(sql.FieldGT(FieldID, id))
}

// IDGTE applies the GTE predicate on the ID field.
func IDGTE(id string) predicate.Run {
	return predicate.Run(sql.FieldGTE(FieldID, id))
}

// IDLT applies the LT predicate on the ID field.
func IDLT(id string) predicate.Run {
	return predicate.Run(sql.FieldLT(FieldID, id))
}

// IDLTE applies the LTE predicate on the ID field.
func IDLTE(id string) predicate.Run {
	return predicate.Run(sql.FieldLTE(FieldID, id))
}

// IDEqualFold applies the EqualFold predicate on the ID field.
func IDEqualFold(id string) predicate.Run {
	return predicate.Run(sql.FieldEqualFold(FieldID, id))
}

// IDContainsFold applies the ContainsFold predicate on the ID field.
func IDContainsFold(id string) predicate.Run {
	return predicate.Run(sql.FieldContainsFold(FieldID, id))
}

// ProjectID applies equality check predicate on the "project_id" field. It's identical to ProjectIDEQ.
func ProjectID(v string) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldProjectID, v))
}

// OwnerID applies equality check predicate on the "owner_id" field. It's identical to OwnerIDEQ.
func OwnerID(v string) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldOwnerID, v))
}

// ChatID applies equality check predicate on the "chat_id" field. It's identical to ChatIDEQ.
func ChatID(v string) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldChatID, v))
}

// UserMessage applies equality check predicate on the "user_message" field. It's identical to UserMessageEQ.
func UserMessage(v string) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldUserMessage, v))
}

// BearerToken applies equality check predicate on the "bearer_token" field. It's identical to BearerTokenEQ.
func BearerToken(v string) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldBearerToken, v))
}

// LastEventSeq applies equality check predicate on the "last_event_seq" field. It's identical to LastEventSeqEQ.
func LastEventSeq(v int) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldLastEventSeq, v))
}

// TurnSeq applies equality check predicate on the "turn_seq" field. It's identical to TurnSeqEQ.
func TurnSeq(v int) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldTurnSeq, v))
}

// LatestOutput applies equality check predicate on the "latest_output" field. It's identical to LatestOutputEQ.
func LatestOutput(v string) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldLatestOutput, v))
}

// LatestErrorCode applies equality check predicate on the "latest_error_code" field. It's identical to LatestErrorCodeEQ.
func LatestErrorCode(v string) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldLatestErrorCode, v))
}

// PodID applies equality check predicate on the "pod_id" field. It's identical to PodIDEQ.
func PodID(v string) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldPodID, v))
}

// LastHeartbeatAt applies equality check predicate on the "last_heartbeat_at" field. It's identical to LastHeartbeatAtEQ.
func LastHeartbeatAt(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldLastHeartbeatAt, v))
}

// CreatedAt applies equality check predicate on the "created_at" field. It's identical to CreatedAtEQ.
func CreatedAt(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldCreatedAt, v))
}

// StartedAt applies equality check predicate on the "started_at" field. It's identical to StartedAtEQ.
func StartedAt(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldStartedAt, v))
}

// CompletedAt applies equality check predicate on the "completed_at" field. It's identical to CompletedAtEQ.
func CompletedAt(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldCompletedAt, v))
}

// ProjectIDEQ applies the EQ predicate on the "project_id" field.
func ProjectIDEQ(v string) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldProjectID, v))
}

// ProjectIDNEQ applies the NEQ predicate on the "project_id" field.
func ProjectIDNEQ(v string) predicate.Run {
	return predicate.Run(sql.FieldNEQ(FieldProjectID, v))
}

// ProjectIDIn applies the In predicate on the "project_id" field.
func ProjectIDIn(vs ...string) predicate.Run {
	return predicate.Run(sql.FieldIn(FieldProjectID, vs...))
}

// ProjectIDNotIn applies the NotIn predicate on the "project_id" field.
func ProjectIDNotIn(vs ...string) predicate.Run {
	return predicate.Run(sql.FieldNotIn(FieldProjectID, vs...))
}

// ProjectIDGT applies the GT predicate on the "project_id" field.
func ProjectIDGT(v string) predicate.Run {
	return predicate.Run(sql.FieldGT(FieldProjectID, v))
}

// ProjectIDGTE applies the GTE predicate on the "project_id" field.
func ProjectIDGTE(v string) predicate.Run {
	return predicate.Run(sql.FieldGTE(FieldProjectID, v))
}

// ProjectIDLT applies the LT predicate on the "project_id" field.
func ProjectIDLT(v string) predicate.Run {
	return predicate.Run(sql.FieldLT(FieldProjectID, v))
}

// ProjectIDLTE applies the LTE predicate on the "project_id" field.
func ProjectIDLTE(v string) predicate.Run {
	return predicate.Run(sql.FieldLTE(FieldProjectID, v))
}

// ProjectIDContains applies the Contains predicate on the "project_id" field.
func ProjectIDContains(v string) predicate.Run {
	return predicate.Run(sql.FieldContains(FieldProjectID, v))
}

// ProjectIDHasPrefix applies the HasPrefix predicate on the "project_id" field.
func ProjectIDHasPrefix(v string) predicate.Run {
	return predicate.Run(sql.FieldHasPrefix(FieldProjectID, v))
}

// ProjectIDHasSuffix applies the HasSuffix predicate on the "project_id" field.
func ProjectIDHasSuffix(v string) predicate.Run {
	return predicate.Run(sql.FieldHasSuffix(FieldProjectID, v))
}

// ProjectIDEqualFold applies the EqualFold predicate on the "project_id" field.
func ProjectIDEqualFold(v string) predicate.Run {
	return predicate.Run(sql.FieldEqualFold(FieldProjectID, v))
}

// ProjectIDContainsFold applies the ContainsFold predicate on the "project_id" field.
func ProjectIDContainsFold(v string) predicate.Run {
	return predicate.Run(sql.FieldContainsFold(FieldProjectID, v))
}

// OwnerIDEQ applies the EQ predicate on the "owner_id" field.
func OwnerIDEQ(v string) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldOwnerID, v))
}

// OwnerIDNEQ applies the NEQ predicate on the "owner_id" field.
func OwnerIDNEQ(v string) predicate.Run {
	return predicate.Run(sql.FieldNEQ(FieldOwnerID, v))
}

// OwnerIDIn applies the In predicate on the "owner_id" field.
func OwnerIDIn(vs ...string) predicate.Run {
	return predicate.Run(sql.FieldIn(FieldOwnerID, vs...))
}

// OwnerIDNotIn applies the NotIn predicate on the "owner_id" field.
func OwnerIDNotIn(vs ...string) predicate.Run {
	return predicate.Run(sql.FieldNotIn(FieldOwnerID, vs...))
}

// OwnerIDGT applies the GT predicate on the "owner_id" field.
func OwnerIDGT(v string) predicate.Run {
	return predicate.Run(sql.FieldGT(FieldOwnerID, v))
}

// OwnerIDGTE applies the GTE predicate on the "owner_id" field.
func OwnerIDGTE(v string) predicate.Run {
	return predicate.Run(sql.FieldGTE(FieldOwnerID, v))
}

// OwnerIDLT applies the LT predicate on the "owner_id" field.
func OwnerIDLT(v string) predicate.Run {
	return predicate.Run(sql.FieldLT(FieldOwnerID, v))
}

// OwnerIDLTE applies the LTE predicate on the "owner_id" field.
func OwnerIDLTE(v string) predicate.Run {
	return predicate.Run(sql.FieldLTE(FieldOwnerID, v))
}

// OwnerIDContains applies the Contains predicate on the "owner_id" field.
func OwnerIDContains(v string) predicate.Run {
	return predicate.Run(sql.FieldContains(FieldOwnerID, v))
}

// OwnerIDHasPrefix applies the HasPrefix predicate on the "owner_id" field.
func OwnerIDHasPrefix(v string) predicate.Run {
	return predicate.Run(sql.FieldHasPrefix(FieldOwnerID, v))
}

// OwnerIDHasSuffix applies the HasSuffix predicate on the "owner_id" field.
func OwnerIDHasSuffix(v string) predicate.Run {
	return predicate.Run(sql.FieldHasSuffix(FieldOwnerID, v))
}

// OwnerIDEqualFold applies the EqualFold predicate on the "owner_id" field.
func OwnerIDEqualFold(v string) predicate.Run {
	return predicate.Run(sql.FieldEqualFold(FieldOwnerID, v))
}

// OwnerIDContainsFold applies the ContainsFold predicate on the "owner_id" field.
func OwnerIDContainsFold(v string) predicate.Run {
	return predicate.Run(sql.FieldContainsFold(FieldOwnerID, v))
}

// ChatIDEQ applies the EQ predicate on the "chat_id" field.
func ChatIDEQ(v string) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldChatID, v))
}

// ChatIDNEQ applies the NEQ predicate on the "chat_id" field.
func ChatIDNEQ(v string) predicate.Run {
	return predicate.Run(sql.FieldNEQ(FieldChatID, v))
}

// ChatIDIn applies the In predicate on the "chat_id" field.
func ChatIDIn(vs ...string) predicate.Run {
	return predicate.Run(sql.FieldIn(FieldChatID, vs...))
}

// ChatIDNotIn applies the NotIn predicate on the "chat_id" field.
func ChatIDNotIn(vs ...string) predicate.Run {
	return predicate.Run(sql.FieldNotIn(FieldChatID, vs...))
}

// ChatIDGT applies the GT predicate on the "chat_id" field.
func ChatIDGT(v string) predicate.Run {
	return predicate.Run(sql.FieldGT(FieldChatID, v))
}

// ChatIDGTE applies the GTE predicate on the "chat_id" field.
func ChatIDGTE(v string) predicate.Run {
	return predicate.Run(sql.FieldGTE(FieldChatID, v))
}

// ChatIDLT applies the LT predicate on the "chat_id" field.
func ChatIDLT(v string) predicate.Run {
	return predicate.Run(sql.FieldLT(FieldChatID, v))
}

// ChatIDLTE applies the LTE predicate on the "chat_id" field.
func ChatIDLTE(v string) predicate.Run {
	return predicate.Run(sql.FieldLTE(FieldChatID, v))
}

// ChatIDContains applies the Contains predicate on the "chat_id" field.
func ChatIDContains(v string) predicate.Run {
	return predicate.Run(sql.FieldContains(FieldChatID, v))
}

// ChatIDHasPrefix applies the HasPrefix predicate on the "chat_id" field.
func ChatIDHasPrefix(v string) predicate.Run {
	return predicate.Run(sql.FieldHasPrefix(FieldChatID, v))
}

// ChatIDHasSuffix applies the HasSuffix predicate on the "chat_id" field.
func ChatIDHasSuffix(v string) predicate.Run {
	return predicate.Run(sql.FieldHasSuffix(FieldChatID, v))
}

// ChatIDIsNil applies the IsNil predicate on the "chat_id" field.
func ChatIDIsNil() predicate.Run {
	return predicate.Run(sql.FieldIsNull(FieldChatID))
}

// ChatIDNotNil applies the NotNil predicate on the "chat_id" field.
func ChatIDNotNil() predicate.Run {
	return predicate.Run(sql.FieldNotNull(FieldChatID))
}

// ChatIDEqualFold applies the EqualFold predicate on the "chat_id" field.
func ChatIDEqualFold(v string) predicate.Run {
	return predicate.Run(sql.FieldEqualFold(FieldChatID, v))
}

// ChatIDContainsFold applies the ContainsFold predicate on the "chat_id" field.
func ChatIDContainsFold(v string) predicate.Run {
	return predicate.Run(sql.FieldContainsFold(FieldChatID, v))
}

// UserMessageEQ applies the EQ predicate on the "user_message" field.
func UserMessageEQ(v string) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldUserMessage, v))
}

// UserMessageNEQ applies the NEQ predicate on the "user_message" field.
func UserMessageNEQ(v string) predicate.Run {
	return predicate.Run(sql.FieldNEQ(FieldUserMessage, v))
}

// UserMessageIn applies the In predicate on the "user_message" field.
func UserMessageIn(vs ...string) predicate.Run {
	return predicate.Run(sql.FieldIn(FieldUserMessage, vs...))
}

// UserMessageNotIn applies the NotIn predicate on the "user_message" field.
func UserMessageNotIn(vs ...string) predicate.Run {
	return predicate.Run(sql.FieldNotIn(FieldUserMessage, vs...))
}

// UserMessageGT applies the GT predicate on the "user_message" field.
func UserMessageGT(v string) predicate.Run {
	return predicate.Run(sql.FieldGT(FieldUserMessage, v))
}

// UserMessageGTE applies the GTE predicate on the "user_message" field.
func UserMessageGTE(v string) predicate.Run {
	return predicate.Run(sql.FieldGTE(FieldUserMessage, v))
}

// UserMessageLT applies the LT predicate on the "user_message" field.
func UserMessageLT(v string) predicate.Run {
	return predicate.Run(sql.FieldLT(FieldUserMessage, v))
}

// UserMessageLTE applies the LTE predicate on the "user_message" field.
func UserMessageLTE(v string) predicate.Run {
	return predicate.Run(sql.FieldLTE(FieldUserMessage, v))
}

// UserMessageContains applies the Contains predicate on the "user_message" field.
func UserMessageContains(v string) predicate.Run {
	return predicate.Run(sql.FieldContains(FieldUserMessage, v))
}

// UserMessageHasPrefix applies the HasPrefix predicate on the "user_message" field.
func UserMessageHasPrefix(v string) predicate.Run {
	return predicate.Run(sql.FieldHasPrefix(FieldUserMessage, v))
}

// UserMessageHasSuffix applies the HasSuffix predicate on the "user_message" field.
func UserMessageHasSuffix(v string) predicate.Run {
	return predicate.Run(sql.FieldHasSuffix(FieldUserMessage, v))
}

// UserMessageEqualFold applies the EqualFold predicate on the "user_message" field.
func UserMessageEqualFold(v string) predicate.Run {
	return predicate.Run(sql.FieldEqualFold(FieldUserMessage, v))
}

// UserMessageContainsFold applies the ContainsFold predicate on the "user_message" field.
func UserMessageContainsFold(v string) predicate.Run {
	return predicate.Run(sql.FieldContainsFold(FieldUserMessage, v))
}

// BearerTokenEQ applies the EQ predicate on the "bearer_token" field.
func BearerTokenEQ(v string) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldBearerToken, v))
}

// BearerTokenNEQ applies the NEQ predicate on the "bearer_token" field.
func BearerTokenNEQ(v string) predicate.Run {
	return predicate.Run(sql.FieldNEQ(FieldBearerToken, v))
}

// BearerTokenIn applies the In predicate on the "bearer_token" field.
func BearerTokenIn(vs ...string) predicate.Run {
	return predicate.Run(sql.FieldIn(FieldBearerToken, vs...))
}

// BearerTokenNotIn applies the NotIn predicate on the "bearer_token" field.
func BearerTokenNotIn(vs ...string) predicate.Run {
	return predicate.Run(sql.FieldNotIn(FieldBearerToken, vs...))
}

// BearerTokenGT applies the GT predicate on the "bearer_token" field.
func BearerTokenGT(v string) predicate.Run {
	return predicate.Run(sql.FieldGT(FieldBearerToken, v))
}

// BearerTokenGTE applies the GTE predicate on the "bearer_token" field.
func BearerTokenGTE(v string) predicate.Run {
	return predicate.Run(sql.FieldGTE(FieldBearerToken, v))
}

// BearerTokenLT applies the LT predicate on the "bearer_token" field.
func BearerTokenLT(v string) predicate.Run {
	return predicate.Run(sql.FieldLT(FieldBearerToken, v))
}

// BearerTokenLTE applies the LTE predicate on the "bearer_token" field.
func BearerTokenLTE(v string) predicate.Run {
	return predicate.Run(sql.FieldLTE(FieldBearerToken, v))
}

// BearerTokenContains applies the Contains predicate on the "bearer_token" field.
func BearerTokenContains(v string) predicate.Run {
	return predicate.Run(sql.FieldContains(FieldBearerToken, v))
}

// BearerTokenHasPrefix applies the HasPrefix predicate on the "bearer_token" field.
func BearerTokenHasPrefix(v string) predicate.Run {
	return predicate.Run(sql.FieldHasPrefix(FieldBearerToken, v))
}

// BearerTokenHasSuffix applies the HasSuffix predicate on the "bearer_token" field.
func BearerTokenHasSuffix(v string) predicate.Run {
	return predicate.Run(sql.FieldHasSuffix(FieldBearerToken, v))
}

// BearerTokenIsNil applies the IsNil predicate on the "bearer_token" field.
func BearerTokenIsNil() predicate.Run {
	return predicate.Run(sql.FieldIsNull(FieldBearerToken))
}

// BearerTokenNotNil applies the NotNil predicate on the "bearer_token" field.
func BearerTokenNotNil() predicate.Run {
	return predicate.Run(sql.FieldNotNull(FieldBearerToken))
}

// BearerTokenEqualFold applies the EqualFold predicate on the "bearer_token" field.
func BearerTokenEqualFold(v string) predicate.Run {
	return predicate.Run(sql.FieldEqualFold(FieldBearerToken, v))
}

// BearerTokenContainsFold applies the ContainsFold predicate on the "bearer_token" field.
func BearerTokenContainsFold(v string) predicate.Run {
	return predicate.Run(sql.FieldContainsFold(FieldBearerToken, v))
}

// StatusEQ applies the EQ predicate on the "status" field.
func StatusEQ(v Status) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldStatus, v))
}

// StatusNEQ applies the NEQ predicate on the "status" field.
func StatusNEQ(v Status) predicate.Run {
	return predicate.Run(sql.FieldNEQ(FieldStatus, v))
}

// StatusIn applies the In predicate on the "status" field.
func StatusIn(vs ...Status) predicate.Run {
	return predicate.Run(sql.FieldIn(FieldStatus, vs...))
}

// StatusNotIn applies the NotIn predicate on the "status" field.
func StatusNotIn(vs ...Status) predicate.Run {
	return predicate.Run(sql.FieldNotIn(FieldStatus, vs...))
}

// LastEventSeqEQ applies the EQ predicate on the "last_event_seq" field.
func LastEventSeqEQ(v int) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldLastEventSeq, v))
}

// LastEventSeqNEQ applies the NEQ predicate on the "last_event_seq" field.
func LastEventSeqNEQ(v int) predicate.Run {
	return predicate.Run(sql.FieldNEQ(FieldLastEventSeq, v))
}

// LastEventSeqIn applies the In predicate on the "last_event_seq" field.
func LastEventSeqIn(vs ...int) predicate.Run {
	return predicate.Run(sql.FieldIn(FieldLastEventSeq, vs...))
}

// LastEventSeqNotIn applies the NotIn predicate on the "last_event_seq" field.
func LastEventSeqNotIn(vs ...int) predicate.Run {
	return predicate.Run(sql.FieldNotIn(FieldLastEventSeq, vs...))
}

// LastEventSeqGT applies the GT predicate on the "last_event_seq" field.
func LastEventSeqGT(v int) predicate.Run {
	return predicate.Run(sql.FieldGT(FieldLastEventSeq, v))
}

// LastEventSeqGTE applies the GTE predicate on the "last_event_seq" field.
func LastEventSeqGTE(v int) predicate.Run {
	return predicate.Run(sql.FieldGTE(FieldLastEventSeq, v))
}

// LastEventSeqLT applies the LT predicate on the "last_event_seq" field.
func LastEventSeqLT(v int) predicate.Run {
	return predicate.Run(sql.FieldLT(FieldLastEventSeq, v))
}

// LastEventSeqLTE applies the LTE predicate on the "last_event_seq" field.
func LastEventSeqLTE(v int) predicate.Run {
	return predicate.Run(sql.FieldLTE(FieldLastEventSeq, v))
}

// TurnSeqEQ applies the EQ predicate on the "turn_seq" field.
func TurnSeqEQ(v int) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldTurnSeq, v))
}

// TurnSeqNEQ applies the NEQ predicate on the "turn_seq" field.
func TurnSeqNEQ(v int) predicate.Run {
	return predicate.Run(sql.FieldNEQ(FieldTurnSeq, v))
}

// TurnSeqIn applies the In predicate on the "turn_seq" field.
func TurnSeqIn(vs ...int) predicate.Run {
	return predicate.Run(sql.FieldIn(FieldTurnSeq, vs...))
}

// TurnSeqNotIn applies the NotIn predicate on the "turn_seq" field.
func TurnSeqNotIn(vs ...int) predicate.Run {
	return predicate.Run(sql.FieldNotIn(FieldTurnSeq, vs...))
}

// TurnSeqGT applies the GT predicate on the "turn_seq" field.
func TurnSeqGT(v int) predicate.Run {
	return predicate.Run(sql.FieldGT(FieldTurnSeq, v))
}

// TurnSeqGTE applies the GTE predicate on the "turn_seq" field.
func TurnSeqGTE(v int) predicate.Run {
	return predicate.Run(sql.FieldGTE(FieldTurnSeq, v))
}

// TurnSeqLT applies the LT predicate on the "turn_seq" field.
func TurnSeqLT(v int) predicate.Run {
	return predicate.Run(sql.FieldLT(FieldTurnSeq, v))
}

// TurnSeqLTE applies the LTE predicate on the "turn_seq" field.
func TurnSeqLTE(v int) predicate.Run {
	return predicate.Run(sql.FieldLTE(FieldTurnSeq, v))
}

// LatestOutputEQ applies the EQ predicate on the "latest_output" field.
func LatestOutputEQ(v string) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldLatestOutput, v))
}

// LatestOutputNEQ applies the NEQ predicate on the "latest_output" field.
func LatestOutputNEQ(v string) predicate.Run {
	return predicate.Run(sql.FieldNEQ(FieldLatestOutput, v))
}

// LatestOutputIn applies the In predicate on the "latest_output" field.
func LatestOutputIn(vs ...string) predicate.Run {
	return predicate.Run(sql.FieldIn(FieldLatestOutput, vs...))
}

// LatestOutputNotIn applies the NotIn predicate on the "latest_output" field.
func LatestOutputNotIn(vs ...string) predicate.Run {
	return predicate.Run(sql.FieldNotIn(FieldLatestOutput, vs...))
}

// LatestOutputGT applies the GT predicate on the "latest_output" field.
func LatestOutputGT(v string) predicate.Run {
	return predicate.Run(sql.FieldGT(FieldLatestOutput, v))
}

// LatestOutputGTE applies the GTE predicate on the "latest_output" field.
func LatestOutputGTE(v string) predicate.Run {
	return predicate.Run(sql.FieldGTE(FieldLatestOutput, v))
}

// LatestOutputLT applies the LT predicate on the "latest_output" field.
func LatestOutputLT(v string) predicate.Run {
	return predicate.Run(sql.FieldLT(FieldLatestOutput, v))
}

// LatestOutputLTE applies the LTE predicate on the "latest_output" field.
func LatestOutputLTE(v string) predicate.Run {
	return predicate.Run(sql.FieldLTE(FieldLatestOutput, v))
}

// LatestOutputContains applies the Contains predicate on the "latest_output" field.
func LatestOutputContains(v string) predicate.Run {
	return predicate.Run(sql.FieldContains(FieldLatestOutput, v))
}

// LatestOutputHasPrefix applies the HasPrefix predicate on the "latest_output" field.
func LatestOutputHasPrefix(v string) predicate.Run {
	return predicate.Run(sql.FieldHasPrefix(FieldLatestOutput, v))
}

// LatestOutputHasSuffix applies the HasSuffix predicate on the "latest_output" field.
func LatestOutputHasSuffix(v string) predicate.Run {
	return predicate.Run(sql.FieldHasSuffix(FieldLatestOutput, v))
}

// LatestOutputIsNil applies the IsNil predicate on the "latest_output" field.
func LatestOutputIsNil() predicate.Run {
	return predicate.Run(sql.FieldIsNull(FieldLatestOutput))
}

// LatestOutputNotNil applies the NotNil predicate on the "latest_output" field.
func LatestOutputNotNil() predicate.Run {
	return predicate.Run(sql.FieldNotNull(FieldLatestOutput))
}

// LatestOutputEqualFold applies the EqualFold predicate on the "latest_output" field.
func LatestOutputEqualFold(v string) predicate.Run {
	return predicate.Run(sql.FieldEqualFold(FieldLatestOutput, v))
}

// LatestOutputContainsFold applies the ContainsFold predicate on the "latest_output" field.
func LatestOutputContainsFold(v string) predicate.Run {
	return predicate.Run(sql.FieldContainsFold(FieldLatestOutput, v))
}

// LatestErrorCodeEQ applies the EQ predicate on the "latest_error_code" field.
func LatestErrorCodeEQ(v string) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldLatestErrorCode, v))
}

// LatestErrorCodeNEQ applies the NEQ predicate on the "latest_error_code" field.
func LatestErrorCodeNEQ(v string) predicate.Run {
	return predicate.Run(sql.FieldNEQ(FieldLatestErrorCode, v))
}

// LatestErrorCodeIn applies the In predicate on the "latest_error_code" field.
func LatestErrorCodeIn(vs ...string) predicate.Run {
	return predicate.Run(sql.FieldIn(FieldLatestErrorCode, vs...))
}

// LatestErrorCodeNotIn applies the NotIn predicate on the "latest_error_code" field.
func LatestErrorCodeNotIn(vs ...string) predicate.Run {
	return predicate.Run(sql.FieldNotIn(FieldLatestErrorCode, vs...))
}

// LatestErrorCodeGT applies the GT predicate on the "latest_error_code" field.
func LatestErrorCodeGT(v string) predicate.Run {
	return predicate.Run(sql.FieldGT(FieldLatestErrorCode, v))
}

// LatestErrorCodeGTE applies the GTE predicate on the "latest_error_code" field.
func LatestErrorCodeGTE(v string) predicate.Run {
	return predicate.Run(sql.FieldGTE(FieldLatestErrorCode, v))
}

// LatestErrorCodeLT applies the LT predicate on the "latest_error_code" field.
func LatestErrorCodeLT(v string) predicate.Run {
	return predicate.Run(sql.FieldLT(FieldLatestErrorCode, v))
}

// LatestErrorCodeLTE applies the LTE predicate on the "latest_error_code" field.
func LatestErrorCodeLTE(v string) predicate.Run {
	return predicate.Run(sql.FieldLTE(FieldLatestErrorCode, v))
}

// LatestErrorCodeContains applies the Contains predicate on the "latest_error_code" field.
func LatestErrorCodeContains(v string) predicate.Run {
	return predicate.Run(sql.FieldContains(FieldLatestErrorCode, v))
}

// LatestErrorCodeHasPrefix applies the HasPrefix predicate on the "latest_error_code" field.
func LatestErrorCodeHasPrefix(v string) predicate.Run {
	return predicate.Run(sql.FieldHasPrefix(FieldLatestErrorCode, v))
}

// LatestErrorCodeHasSuffix applies the HasSuffix predicate on the "latest_error_code" field.
func LatestErrorCodeHasSuffix(v string) predicate.Run {
	return predicate.Run(sql.FieldHasSuffix(FieldLatestErrorCode, v))
}

// LatestErrorCodeIsNil applies the IsNil predicate on the "latest_error_code" field.
func LatestErrorCodeIsNil() predicate.Run {
	return predicate.Run(sql.FieldIsNull(FieldLatestErrorCode))
}

// LatestErrorCodeNotNil applies the NotNil predicate on the "latest_error_code" field.
func LatestErrorCodeNotNil() predicate.Run {
	return predicate.Run(sql.FieldNotNull(FieldLatestErrorCode))
}

// LatestErrorCodeEqualFold applies the EqualFold predicate on the "latest_error_code" field.
func LatestErrorCodeEqualFold(v string) predicate.Run {
	return predicate.Run(sql.FieldEqualFold(FieldLatestErrorCode, v))
}

// LatestErrorCodeContainsFold applies the ContainsFold predicate on the "latest_error_code" field.
func LatestErrorCodeContainsFold(v string) predicate.Run {
	return predicate.Run(sql.FieldContainsFold(FieldLatestErrorCode, v))
}

// PodIDEQ applies the EQ predicate on the "pod_id" field.
func PodIDEQ(v string) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldPodID, v))
}

// PodIDNEQ applies the NEQ predicate on the "pod_id" field.
func PodIDNEQ(v string) predicate.Run {
	return predicate.Run(sql.FieldNEQ(FieldPodID, v))
}

// PodIDIn applies the In predicate on the "pod_id" field.
func PodIDIn(vs ...string) predicate.Run {
	return predicate.Run(sql.FieldIn(FieldPodID, vs...))
}

// PodIDNotIn applies the NotIn predicate on the "pod_id" field.
func PodIDNotIn(vs ...string) predicate.Run {
	return predicate.Run(sql.FieldNotIn(FieldPodID, vs...))
}

// PodIDGT applies the GT predicate on the "pod_id" field.
func PodIDGT(v string) predicate.Run {
	return predicate.Run(sql.FieldGT(FieldPodID, v))
}

// PodIDGTE applies the GTE predicate on the "pod_id" field.
func PodIDGTE(v string) predicate.Run {
	return predicate.Run(sql.FieldGTE(FieldPodID, v))
}

// PodIDLT applies the LT predicate on the "pod_id" field.
func PodIDLT(v string) predicate.Run {
	return predicate.Run(sql.FieldLT(FieldPodID, v))
}

// PodIDLTE applies the LTE predicate on the "pod_id" field.
func PodIDLTE(v string) predicate.Run {
	return predicate.Run(sql.FieldLTE(FieldPodID, v))
}

// PodIDContains applies the Contains predicate on the "pod_id" field.
func PodIDContains(v string) predicate.Run {
	return predicate.Run(sql.FieldContains(FieldPodID, v))
}

// PodIDHasPrefix applies the HasPrefix predicate on the "pod_id" field.
func PodIDHasPrefix(v string) predicate.Run {
	return predicate.Run(sql.FieldHasPrefix(FieldPodID, v))
}

// PodIDHasSuffix applies the HasSuffix predicate on the "pod_id" field.
func PodIDHasSuffix(v string) predicate.Run {
	return predicate.Run(sql.FieldHasSuffix(FieldPodID, v))
}

// PodIDIsNil applies the IsNil predicate on the "pod_id" field.
func PodIDIsNil() predicate.Run {
	return predicate.Run(sql.FieldIsNull(FieldPodID))
}

// PodIDNotNil applies the NotNil predicate on the "pod_id" field.
func PodIDNotNil() predicate.Run {
	return predicate.Run(sql.FieldNotNull(FieldPodID))
}

// PodIDEqualFold applies the EqualFold predicate on the "pod_id" field.
func PodIDEqualFold(v string) predicate.Run {
	return predicate.Run(sql.FieldEqualFold(FieldPodID, v))
}

// PodIDContainsFold applies the ContainsFold predicate on the "pod_id" field.
func PodIDContainsFold(v string) predicate.Run {
	return predicate.Run(sql.FieldContainsFold(FieldPodID, v))
}

// LastHeartbeatAtEQ applies the EQ predicate on the "last_heartbeat_at" field.
func LastHeartbeatAtEQ(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldLastHeartbeatAt, v))
}

// LastHeartbeatAtNEQ applies the NEQ predicate on the "last_heartbeat_at" field.
func LastHeartbeatAtNEQ(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldNEQ(FieldLastHeartbeatAt, v))
}

// LastHeartbeatAtIn applies the In predicate on the "last_heartbeat_at" field.
func LastHeartbeatAtIn(vs ...time.Time) predicate.Run {
	return predicate.Run(sql.FieldIn(FieldLastHeartbeatAt, vs...))
}

// LastHeartbeatAtNotIn applies the NotIn predicate on the "last_heartbeat_at" field.
func LastHeartbeatAtNotIn(vs ...time.Time) predicate.Run {
	return predicate.Run(sql.FieldNotIn(FieldLastHeartbeatAt, vs...))
}

// LastHeartbeatAtGT applies the GT predicate on the "last_heartbeat_at" field.
func LastHeartbeatAtGT(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldGT(FieldLastHeartbeatAt, v))
}

// LastHeartbeatAtGTE applies the GTE predicate on the "last_heartbeat_at" field.
func LastHeartbeatAtGTE(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldGTE(FieldLastHeartbeatAt, v))
}

// LastHeartbeatAtLT applies the LT predicate on the "last_heartbeat_at" field.
func LastHeartbeatAtLT(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldLT(FieldLastHeartbeatAt, v))
}

// LastHeartbeatAtLTE applies the LTE predicate on the "last_heartbeat_at" field.
func LastHeartbeatAtLTE(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldLTE(FieldLastHeartbeatAt, v))
}

// LastHeartbeatAtIsNil applies the IsNil predicate on the "last_heartbeat_at" field.
func LastHeartbeatAtIsNil() predicate.Run {
	return predicate.Run(sql.FieldIsNull(FieldLastHeartbeatAt))
}

// LastHeartbeatAtNotNil applies the NotNil predicate on the "last_heartbeat_at" field.
func LastHeartbeatAtNotNil() predicate.Run {
	return predicate.Run(sql.FieldNotNull(FieldLastHeartbeatAt))
}

// CreatedAtEQ applies the EQ predicate on the "created_at" field.
func CreatedAtEQ(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldCreatedAt, v))
}

// CreatedAtNEQ applies the NEQ predicate on the "created_at" field.
func CreatedAtNEQ(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldNEQ(FieldCreatedAt, v))
}

// CreatedAtIn applies the In predicate on the "created_at" field.
func CreatedAtIn(vs ...time.Time) predicate.Run {
	return predicate.Run(sql.FieldIn(FieldCreatedAt, vs...))
}

// CreatedAtNotIn applies the NotIn predicate on the "created_at" field.
func CreatedAtNotIn(vs ...time.Time) predicate.Run {
	return predicate.Run(sql.FieldNotIn(FieldCreatedAt, vs...))
}

// CreatedAtGT applies the GT predicate on the "created_at" field.
func CreatedAtGT(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldGT(FieldCreatedAt, v))
}

// CreatedAtGTE applies the GTE predicate on the "created_at" field.
func CreatedAtGTE(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldGTE(FieldCreatedAt, v))
}

// CreatedAtLT applies the LT predicate on the "created_at" field.
func CreatedAtLT(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldLT(FieldCreatedAt, v))
}

// CreatedAtLTE applies the LTE predicate on the "created_at" field.
func CreatedAtLTE(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldLTE(FieldCreatedAt, v))
}

// StartedAtEQ applies the EQ predicate on the "started_at" field.
func StartedAtEQ(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldStartedAt, v))
}

// StartedAtNEQ applies the NEQ predicate on the "started_at" field.
func StartedAtNEQ(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldNEQ(FieldStartedAt, v))
}

// StartedAtIn applies the In predicate on the "started_at" field.
func StartedAtIn(vs ...time.Time) predicate.Run {
	return predicate.Run(sql.FieldIn(FieldStartedAt, vs...))
}

// StartedAtNotIn applies the NotIn predicate on the "started_at" field.
func StartedAtNotIn(vs ...time.Time) predicate.Run {
	return predicate.Run(sql.FieldNotIn(FieldStartedAt, vs...))
}

// StartedAtGT applies the GT predicate on the "started_at" field.
func StartedAtGT(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldGT(FieldStartedAt, v))
}

// StartedAtGTE applies the GTE predicate on the "started_at" field.
func StartedAtGTE(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldGTE(FieldStartedAt, v))
}

// StartedAtLT applies the LT predicate on the "started_at" field.
func StartedAtLT(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldLT(FieldStartedAt, v))
}

// StartedAtLTE applies the LTE predicate on the "started_at" field.
func StartedAtLTE(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldLTE(FieldStartedAt, v))
}

// StartedAtIsNil applies the IsNil predicate on the "started_at" field.
func StartedAtIsNil() predicate.Run {
	return predicate.Run(sql.FieldIsNull(FieldStartedAt))
}

// StartedAtNotNil applies the NotNil predicate on the "started_at" field.
func StartedAtNotNil() predicate.Run {
	return predicate.Run(sql.FieldNotNull(FieldStartedAt))
}

// CompletedAtEQ applies the EQ predicate on the "completed_at" field.
func CompletedAtEQ(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldEQ(FieldCompletedAt, v))
}

// CompletedAtNEQ applies the NEQ predicate on the "completed_at" field.
func CompletedAtNEQ(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldNEQ(FieldCompletedAt, v))
}

// CompletedAtIn applies the In predicate on the "completed_at" field.
func CompletedAtIn(vs ...time.Time) predicate.Run {
	return predicate.Run(sql.FieldIn(FieldCompletedAt, vs...))
}

// CompletedAtNotIn applies the NotIn predicate on the "completed_at" field.
func CompletedAtNotIn(vs ...time.Time) predicate.Run {
	return predicate.Run(sql.FieldNotIn(FieldCompletedAt, vs...))
}

// CompletedAtGT applies the GT predicate on the "completed_at" field.
func CompletedAtGT(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldGT(FieldCompletedAt, v))
}

// CompletedAtGTE applies the GTE predicate on the "completed_at" field.
func CompletedAtGTE(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldGTE(FieldCompletedAt, v))
}

// CompletedAtLT applies the LT predicate on the "completed_at" field.
func CompletedAtLT(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldLT(FieldCompletedAt, v))
}

// CompletedAtLTE applies the LTE predicate on the "completed_at" field.
func CompletedAtLTE(v time.Time) predicate.Run {
	return predicate.Run(sql.FieldLTE(FieldCompletedAt, v))
}

// CompletedAtIsNil applies the IsNil predicate on the "completed_at" field.
func CompletedAtIsNil() predicate.Run {
	return predicate.Run(sql.FieldIsNull(FieldCompletedAt))
}

// CompletedAtNotNil applies the NotNil predicate on the "completed_at" field.
func CompletedAtNotNil() predicate.Run {
	return predicate.Run(sql.FieldNotNull(FieldCompletedAt))
}

// HasEvents applies the HasEdge predicate on the "events" edge.
func HasEvents() predicate.Run {
	return predicate.Run(func(s *sql.Selector) {
		step := sqlgraph.NewStep(
			sqlgraph.From(Table, FieldID),
			sqlgraph.Edge(sqlgraph.O2M, false, EventsTable, EventsColumn),
		)
		sqlgraph.HasNeighbors(s, step)
	})
}

// HasEventsWith applies the HasEdge predicate on the "events" edge with a given conditions (other predicates).
func HasEventsWith(preds ...predicate.RunEvent) predicate.Run {
	return predicate.Run(func(s *sql.Selector) {
		step := newEventsStep()
		sqlgraph.HasNeighborsWith(s, step, func(s *sql.Selector) {
			for _, p := range preds {
				p(s)
			}
		})
	})
}

// And groups predicates with the AND operator between them.
func And(predicates ...predicate.Run) predicate.Run {
	return predicate.Run(sql.AndPredicates(predicates...))
}

// Or groups predicates with the OR operator between them.
func Or(predicates ...predicate.Run) predicate.Run {
	return predicate.Run(sql.OrPredicates(predicates...))
}

// Not applies the not operator on the given predicate.
func Not(p predicate.Run) predicate.Run {
	return predicate.Run(sql.NotPredicates(p))
}
