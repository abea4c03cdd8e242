// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "github.com/bureau-foundation/roomevents/lib/ref"

// Event types with content structs in this package. Every one of them
// has an entry in the default kind table (lib/eventkind/default.yaml).
const (
	EventTypeAliases           ref.EventType = "m.room.aliases"
	EventTypeAvatar            ref.EventType = "m.room.avatar"
	EventTypeCanonicalAlias    ref.EventType = "m.room.canonical_alias"
	EventTypeCreate            ref.EventType = "m.room.create"
	EventTypeEncrypted         ref.EventType = "m.room.encrypted"
	EventTypeEncryption        ref.EventType = "m.room.encryption"
	EventTypeGuestAccess       ref.EventType = "m.room.guest_access"
	EventTypeHistoryVisibility ref.EventType = "m.room.history_visibility"
	EventTypeJoinRules         ref.EventType = "m.room.join_rules"
	EventTypeMember            ref.EventType = "m.room.member"
	EventTypeMessage           ref.EventType = "m.room.message"
	EventTypeName              ref.EventType = "m.room.name"
	EventTypePinnedEvents      ref.EventType = "m.room.pinned_events"
	EventTypePowerLevels       ref.EventType = "m.room.power_levels"
	EventTypeRedaction         ref.EventType = "m.room.redaction"
	EventTypeServerACL         ref.EventType = "m.room.server_acl"
	EventTypeThirdPartyInvite  ref.EventType = "m.room.third_party_invite"
	EventTypeTombstone         ref.EventType = "m.room.tombstone"
	EventTypeTopic             ref.EventType = "m.room.topic"
	EventTypeReaction          ref.EventType = "m.reaction"
	EventTypeSticker           ref.EventType = "m.sticker"
	EventTypeSpaceChild        ref.EventType = "m.space.child"
	EventTypeSpaceParent       ref.EventType = "m.space.parent"
	EventTypeTyping            ref.EventType = "m.typing"
	EventTypePresence          ref.EventType = "m.presence"
)
