// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "github.com/bureau-foundation/roomevents/lib/ref"

// Message types (the msgtype field of m.room.message).
const (
	MsgTypeText   = "m.text"
	MsgTypeNotice = "m.notice"
	MsgTypeEmote  = "m.emote"
	MsgTypeImage  = "m.image"
	MsgTypeFile   = "m.file"
	MsgTypeAudio  = "m.audio"
	MsgTypeVideo  = "m.video"
)

// FormatHTML is the only format value the protocol defines for
// formatted_body.
const FormatHTML = "org.matrix.custom.html"

// Relation types for RelatesTo.RelType.
const (
	RelTypeThread     = "m.thread"
	RelTypeAnnotation = "m.annotation"
	RelTypeReplace    = "m.replace"
	RelTypeReference  = "m.reference"
)

// MessageContent is the content of m.room.message.
//
// Threads are first-class: set RelatesTo to send messages within a
// thread. Media messages (m.image, m.file, m.audio, m.video) carry
// their attachment in URL, or in File when the room is encrypted, and
// describe it in Info. Text messages may carry an HTML rendering in
// FormattedBody.
type MessageContent struct {
	MsgType       string         `json:"msgtype"`
	Body          string         `json:"body"`
	Format        string         `json:"format,omitempty"`
	FormattedBody string         `json:"formatted_body,omitempty"`
	URL           string         `json:"url,omitempty"`
	File          *EncryptedFile `json:"file,omitempty"`
	Filename      string         `json:"filename,omitempty"`
	Info          *ImageInfo     `json:"info,omitempty"`
	Mentions      *Mentions      `json:"m.mentions,omitempty"`
	RelatesTo     *RelatesTo     `json:"m.relates_to,omitempty"`
}

func (MessageContent) EventType() ref.EventType { return EventTypeMessage }

// MediaSource returns the attachment of a media message. The second
// result is false for messages without one.
func (m MessageContent) MediaSource() (MediaSource, bool) {
	return newMediaSource(m.URL, m.File)
}

// Mentions identifies users referenced in a message. Follows the
// m.mentions format: fully-qualified user IDs the message is addressed
// to, and whether the whole room is mentioned.
type Mentions struct {
	UserIDs []string `json:"user_ids,omitempty"`
	Room    bool     `json:"room,omitempty"`
}

// RelatesTo expresses relationships between events.
// For threads, RelType is "m.thread" and EventID is the thread root.
// For reactions, RelType is "m.annotation" and Key is the reaction.
// A plain reply has no RelType and only InReplyTo.
type RelatesTo struct {
	RelType       string      `json:"rel_type,omitempty"`
	EventID       ref.EventID `json:"event_id,omitzero"`
	Key           string      `json:"key,omitempty"`
	IsFallingBack bool        `json:"is_falling_back,omitempty"`
	InReplyTo     *InReplyTo  `json:"m.in_reply_to,omitempty"`
}

// InReplyTo references a specific event being replied to.
type InReplyTo struct {
	EventID ref.EventID `json:"event_id"`
}

// ImageInfo describes attached media and its optional thumbnail. Like
// the attachment itself, the thumbnail lives in ThumbnailURL or, in
// encrypted rooms, ThumbnailFile.
type ImageInfo struct {
	MimeType      string         `json:"mimetype,omitempty"`
	Size          int64          `json:"size,omitempty"`
	Width         int            `json:"w,omitempty"`
	Height        int            `json:"h,omitempty"`
	ThumbnailURL  string         `json:"thumbnail_url,omitempty"`
	ThumbnailFile *EncryptedFile `json:"thumbnail_file,omitempty"`
	ThumbnailInfo *ThumbnailInfo `json:"thumbnail_info,omitempty"`
}

// ThumbnailSource returns where the thumbnail is stored, if there is one.
func (i ImageInfo) ThumbnailSource() (MediaSource, bool) {
	return newMediaSource(i.ThumbnailURL, i.ThumbnailFile)
}

// ThumbnailInfo describes a thumbnail image.
type ThumbnailInfo struct {
	MimeType string `json:"mimetype,omitempty"`
	Size     int64  `json:"size,omitempty"`
	Width    int    `json:"w,omitempty"`
	Height   int    `json:"h,omitempty"`
}

// MediaSource is where an attachment is stored: a plain mxc:// URL, or
// an encrypted file whose URL points at ciphertext. Exactly one of URL
// and File is set.
type MediaSource struct {
	URL  string
	File *EncryptedFile
}

// Encrypted reports whether the attachment must be decrypted with the
// key in File.
func (s MediaSource) Encrypted() bool { return s.File != nil }

// ContentURL returns the mxc:// URL to download, which for encrypted
// attachments is the ciphertext.
func (s MediaSource) ContentURL() string {
	if s.File != nil {
		return s.File.URL
	}
	return s.URL
}

// newMediaSource picks the source from a url/file field pair. Content
// that carries both is treated as encrypted: the plain URL is a
// fallback for clients without encryption support.
func newMediaSource(url string, file *EncryptedFile) (MediaSource, bool) {
	switch {
	case file != nil:
		return MediaSource{File: file}, true
	case url != "":
		return MediaSource{URL: url}, true
	}
	return MediaSource{}, false
}

// EncryptedFile is an attachment encrypted with AES-CTR. The key and iv
// are unpadded base64, and Hashes maps algorithm names ("sha256") to
// unpadded base64 digests of the ciphertext.
type EncryptedFile struct {
	URL    string            `json:"url"`
	Key    JSONWebKey        `json:"key"`
	IV     string            `json:"iv"`
	Hashes map[string]string `json:"hashes"`
	V      string            `json:"v"`
}

// JSONWebKey is the symmetric key of an EncryptedFile, in JWK form.
// K is unpadded url-safe base64.
type JSONWebKey struct {
	Kty    string   `json:"kty"`
	KeyOps []string `json:"key_ops"`
	Alg    string   `json:"alg"`
	K      string   `json:"k"`
	Ext    bool     `json:"ext"`
}

// NewTextMessage creates a plain text message with no thread context.
func NewTextMessage(body string) MessageContent {
	return MessageContent{
		MsgType: MsgTypeText,
		Body:    body,
	}
}

// NewNotice creates an m.notice message, the msgtype for automated
// output that clients should not respond to.
func NewNotice(body string) MessageContent {
	return MessageContent{
		MsgType: MsgTypeNotice,
		Body:    body,
	}
}

// NewThreadReply creates a message that replies within an existing thread.
// threadRootID is the event ID of the thread's root message.
func NewThreadReply(threadRootID ref.EventID, body string) MessageContent {
	return MessageContent{
		MsgType: MsgTypeText,
		Body:    body,
		RelatesTo: &RelatesTo{
			RelType:       RelTypeThread,
			EventID:       threadRootID,
			IsFallingBack: true,
			InReplyTo: &InReplyTo{
				EventID: threadRootID,
			},
		},
	}
}

// ReactionContent is the content of m.reaction: an annotation of
// another event.
type ReactionContent struct {
	RelatesTo RelatesTo `json:"m.relates_to"`
}

func (ReactionContent) EventType() ref.EventType { return EventTypeReaction }

// NewReaction annotates target with key (usually an emoji).
func NewReaction(target ref.EventID, key string) ReactionContent {
	return ReactionContent{
		RelatesTo: RelatesTo{
			RelType: RelTypeAnnotation,
			EventID: target,
			Key:     key,
		},
	}
}

// StickerContent is the content of m.sticker.
type StickerContent struct {
	Body      string         `json:"body"`
	URL       string         `json:"url"`
	File      *EncryptedFile `json:"file,omitempty"`
	Info      *ImageInfo     `json:"info,omitempty"`
	RelatesTo *RelatesTo     `json:"m.relates_to,omitempty"`
}

func (StickerContent) EventType() ref.EventType { return EventTypeSticker }

// MediaSource returns the sticker image, preferring File over URL.
func (s StickerContent) MediaSource() (MediaSource, bool) {
	return newMediaSource(s.URL, s.File)
}
