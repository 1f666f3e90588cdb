package domain

import "time"

// Raw record field names shared between the fetch adapters that produce them
// and the per-source normalizer mappings that consume them. No other package
// reads individual fields.
const (
	RawFieldText         = "text"
	RawFieldCreatedAt    = "created_at"
	RawFieldLikeCount    = "like_count"
	RawFieldRetweetCount = "retweet_count"
	RawFieldReplyCount   = "reply_count"
	RawFieldLang         = "lang"
	RawFieldVideoID      = "video_id"
	RawFieldComment      = "comment"
	RawFieldPublishedAt  = "published_at"
)

// RawRecord is one fetched post or comment as a mapping of source-specific
// fields, before normalization.
type RawRecord map[string]any

// Window is the half-open time range [Start, End) a fetch run covers.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// RawBatch is the output of one fetch against one source.
type RawBatch struct {
	Source    Source
	FetchedAt time.Time
	Records   []RawRecord
	Videos    []Video
}

// Video carries per-video statistics returned alongside YouTube comments.
// Counts default to zero when the platform omits or mangles them;
// PublishedAt is passed through as returned by the platform.
type Video struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	PublishedAt  string `json:"published_at"`
	ViewCount    int    `json:"view_count"`
	LikeCount    int    `json:"like_count"`
	CommentCount int    `json:"comment_count"`
}
