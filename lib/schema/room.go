// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "github.com/bureau-foundation/roomevents/lib/ref"

// CreateContent is the content of m.room.create, the first event of
// every room. Redaction keeps all of it.
type CreateContent struct {
	// Creator is only present in room versions before 11; later
	// versions use the event sender.
	Creator string `json:"creator,omitempty"`

	// Federate is false for rooms that must stay on the creating
	// server. Absent means true.
	Federate *bool `json:"m.federate,omitempty"`

	RoomVersion string        `json:"room_version,omitempty"`
	Predecessor *PreviousRoom `json:"predecessor,omitempty"`

	// Type distinguishes special rooms, e.g. "m.space".
	Type string `json:"type,omitempty"`
}

func (CreateContent) EventType() ref.EventType { return EventTypeCreate }

// PreviousRoom points from an upgraded room to the room it replaced.
type PreviousRoom struct {
	RoomID  ref.RoomID  `json:"room_id"`
	EventID ref.EventID `json:"event_id,omitzero"`
}

// Membership is the membership state in m.room.member content.
type Membership string

const (
	MembershipJoin   Membership = "join"
	MembershipInvite Membership = "invite"
	MembershipLeave  Membership = "leave"
	MembershipBan    Membership = "ban"
	MembershipKnock  Membership = "knock"
)

// MemberContent is the content of m.room.member. The state key is the
// user ID whose membership changes.
type MemberContent struct {
	Membership  Membership `json:"membership"`
	DisplayName string     `json:"displayname,omitempty"`
	AvatarURL   string     `json:"avatar_url,omitempty"`
	IsDirect    bool       `json:"is_direct,omitempty"`
	Reason      string     `json:"reason,omitempty"`

	// JoinAuthorisedViaUsersServer names the user whose server
	// authorised a restricted join. Survives redaction so that the join
	// can still be authorised after the event is redacted.
	JoinAuthorisedViaUsersServer string `json:"join_authorised_via_users_server,omitempty"`

	ThirdPartyInvite *ThirdPartyInvite `json:"third_party_invite,omitempty"`
}

func (MemberContent) EventType() ref.EventType { return EventTypeMember }

// ThirdPartyInvite is the invite a m.room.member event was issued for.
type ThirdPartyInvite struct {
	DisplayName string         `json:"display_name"`
	Signed      map[string]any `json:"signed"`
}

// NameContent is the content of m.room.name.
type NameContent struct {
	Name string `json:"name"`
}

func (NameContent) EventType() ref.EventType { return EventTypeName }

// TopicContent is the content of m.room.topic.
type TopicContent struct {
	Topic string `json:"topic"`
}

func (TopicContent) EventType() ref.EventType { return EventTypeTopic }

// AvatarContent is the content of m.room.avatar. An empty URL removes
// the avatar.
type AvatarContent struct {
	URL  string     `json:"url,omitempty"`
	Info *ImageInfo `json:"info,omitempty"`
}

func (AvatarContent) EventType() ref.EventType { return EventTypeAvatar }

// AliasesContent is the content of the legacy m.room.aliases event.
type AliasesContent struct {
	Aliases []string `json:"aliases"`
}

func (AliasesContent) EventType() ref.EventType { return EventTypeAliases }

// CanonicalAliasContent is the content of m.room.canonical_alias.
type CanonicalAliasContent struct {
	Alias      string   `json:"alias,omitempty"`
	AltAliases []string `json:"alt_aliases,omitempty"`
}

func (CanonicalAliasContent) EventType() ref.EventType { return EventTypeCanonicalAlias }

// JoinRule values for JoinRulesContent.
const (
	JoinRulePublic     = "public"
	JoinRuleInvite     = "invite"
	JoinRuleKnock      = "knock"
	JoinRuleRestricted = "restricted"
	JoinRulePrivate    = "private"
)

// JoinRulesContent is the content of m.room.join_rules.
type JoinRulesContent struct {
	JoinRule string `json:"join_rule"`

	// Allow lists the conditions for restricted and knock_restricted
	// rooms.
	Allow []AllowCondition `json:"allow,omitempty"`
}

func (JoinRulesContent) EventType() ref.EventType { return EventTypeJoinRules }

// AllowCondition is one entry of a restricted join rule.
type AllowCondition struct {
	Type   string     `json:"type"`
	RoomID ref.RoomID `json:"room_id,omitzero"`
}

// History visibility values.
const (
	HistoryVisibilityInvited       = "invited"
	HistoryVisibilityJoined        = "joined"
	HistoryVisibilityShared        = "shared"
	HistoryVisibilityWorldReadable = "world_readable"
)

// HistoryVisibilityContent is the content of m.room.history_visibility.
type HistoryVisibilityContent struct {
	HistoryVisibility string `json:"history_visibility"`
}

func (HistoryVisibilityContent) EventType() ref.EventType { return EventTypeHistoryVisibility }

// GuestAccessContent is the content of m.room.guest_access.
type GuestAccessContent struct {
	GuestAccess string `json:"guest_access"`
}

func (GuestAccessContent) EventType() ref.EventType { return EventTypeGuestAccess }

// EncryptionContent is the content of m.room.encryption.
type EncryptionContent struct {
	Algorithm          string `json:"algorithm"`
	RotationPeriodMs   int64  `json:"rotation_period_ms,omitempty"`
	RotationPeriodMsgs int64  `json:"rotation_period_msgs,omitempty"`
}

func (EncryptionContent) EventType() ref.EventType { return EventTypeEncryption }

// EncryptedContent is the content of m.room.encrypted for the megolm
// algorithm. Olm ciphertext is an object keyed by device and does not
// fit the Ciphertext string; the default kind table leaves it in the
// extra-fields sidecar.
type EncryptedContent struct {
	Algorithm  string     `json:"algorithm"`
	Ciphertext string     `json:"ciphertext,omitempty"`
	SenderKey  string     `json:"sender_key,omitempty"`
	DeviceID   string     `json:"device_id,omitempty"`
	SessionID  string     `json:"session_id,omitempty"`
	RelatesTo  *RelatesTo `json:"m.relates_to,omitempty"`
}

func (EncryptedContent) EventType() ref.EventType { return EventTypeEncrypted }

// PinnedEventsContent is the content of m.room.pinned_events.
type PinnedEventsContent struct {
	Pinned []ref.EventID `json:"pinned"`
}

func (PinnedEventsContent) EventType() ref.EventType { return EventTypePinnedEvents }

// ServerACLContent is the content of m.room.server_acl.
type ServerACLContent struct {
	Allow []string `json:"allow,omitempty"`
	Deny  []string `json:"deny,omitempty"`

	// AllowIPLiterals defaults to true when absent.
	AllowIPLiterals *bool `json:"allow_ip_literals,omitempty"`
}

func (ServerACLContent) EventType() ref.EventType { return EventTypeServerACL }

// ThirdPartyInviteContent is the content of m.room.third_party_invite.
type ThirdPartyInviteContent struct {
	DisplayName    string      `json:"display_name"`
	KeyValidityURL string      `json:"key_validity_url"`
	PublicKey      string      `json:"public_key"`
	PublicKeys     []PublicKey `json:"public_keys,omitempty"`
}

func (ThirdPartyInviteContent) EventType() ref.EventType { return EventTypeThirdPartyInvite }

// PublicKey is one key of a third-party invite.
type PublicKey struct {
	PublicKey      string `json:"public_key"`
	KeyValidityURL string `json:"key_validity_url,omitempty"`
}

// TombstoneContent is the content of m.room.tombstone, sent when a room
// is upgraded.
type TombstoneContent struct {
	Body            string     `json:"body"`
	ReplacementRoom ref.RoomID `json:"replacement_room"`
}

func (TombstoneContent) EventType() ref.EventType { return EventTypeTombstone }

// RedactionContent is the content of m.room.redaction. Room versions
// 11 and later carry the redacted event ID here rather than at the top
// level of the event.
type RedactionContent struct {
	Redacts ref.EventID `json:"redacts,omitzero"`
	Reason  string      `json:"reason,omitempty"`
}

func (RedactionContent) EventType() ref.EventType { return EventTypeRedaction }

// SpaceChildContent is the content of m.space.child. The state key is
// the child room ID. A child without Via is no longer part of the
// space.
type SpaceChildContent struct {
	Via       []string `json:"via,omitempty"`
	Order     string   `json:"order,omitempty"`
	Suggested bool     `json:"suggested,omitempty"`
}

func (SpaceChildContent) EventType() ref.EventType { return EventTypeSpaceChild }

// SpaceParentContent is the content of m.space.parent. The state key is
// the parent space's room ID.
type SpaceParentContent struct {
	Via       []string `json:"via,omitempty"`
	Canonical bool     `json:"canonical,omitempty"`
}

func (SpaceParentContent) EventType() ref.EventType { return EventTypeSpaceParent }
