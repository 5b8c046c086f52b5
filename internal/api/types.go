// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"encoding/json"
	"time"

	"streamplay/cli/internal/session"
)

// envelope is the backend's uniform response wrapper. Every endpoint nests
// its payload under "data"; the shape of the payload differs per endpoint and
// is normalized here, immediately after the network call, so nothing above
// this package branches on response shape.
type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
}

// errorBody is the backend's structured error payload. Depending on the
// endpoint the human-readable text sits under "error" or "message".
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e errorBody) text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// Video is a published video as returned by the backend.
type Video struct {
	ID          string    `json:"_id"`
	VideoFile   string    `json:"videoFile"`
	Thumbnail   string    `json:"thumbnail"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Views       int       `json:"views"`
	IsPublished bool      `json:"isPublished"`
	Owner       VideoOwner `json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
}

// VideoOwner is the denormalized channel owning a video. Some endpoints
// return a bare ID here; UnmarshalJSON accepts both shapes.
type VideoOwner struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

// UnmarshalJSON accepts either an owner object or a bare ID string.
func (o *VideoOwner) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		o.ID = id
		return nil
	}
	type alias VideoOwner
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*o = VideoOwner(a)
	return nil
}

// VideoPage is one page of a video listing.
type VideoPage struct {
	Docs        []Video `json:"docs"`
	TotalDocs   int     `json:"totalDocs"`
	Page        int     `json:"page"`
	TotalPages  int     `json:"totalPages"`
	HasNextPage bool    `json:"hasNextPage"`
}

// ListVideosParams filters and paginates GET /video.
type ListVideosParams struct {
	UserID   string
	Search   string
	Page     int
	Limit    int
	SortBy   string
	SortType string
}

// Comment is a comment on a video.
type Comment struct {
	ID         string     `json:"_id"`
	Content    string     `json:"content"`
	Owner      VideoOwner `json:"owner"`
	LikesCount int        `json:"likesCount"`
	IsLiked    bool       `json:"isLiked"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// CommentPage is one page of a comment listing.
type CommentPage struct {
	Docs        []Comment `json:"docs"`
	TotalDocs   int       `json:"totalDocs"`
	Page        int       `json:"page"`
	HasNextPage bool      `json:"hasNextPage"`
}

// ChannelProfile is the aggregate view of a channel returned by
// GET /user/c/{username}: the profile plus subscription counters relative to
// the requesting session.
type ChannelProfile struct {
	ID                string `json:"_id"`
	Username          string `json:"username"`
	FullName          string `json:"fullName"`
	Avatar            string `json:"avatar"`
	CoverImage        string `json:"coverImage"`
	SubscribersCount  int    `json:"subscribersCount"`
	SubscribedToCount int    `json:"channelsSubscribedToCount"`
	IsSubscribed      bool   `json:"isSubscribed"`
}

// Subscription links a subscriber to a channel.
type Subscription struct {
	ID         string     `json:"_id"`
	Subscriber VideoOwner `json:"subscriber"`
	Channel    VideoOwner `json:"channel"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// RegisterRequest carries the sign-up form. Avatar is required by the
// backend; cover image is optional.
type RegisterRequest struct {
	Username       string
	Email          string
	Password       string
	FullName       string
	AvatarPath     string
	CoverImagePath string
}

// PublishVideoRequest carries a video upload.
type PublishVideoRequest struct {
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

// UpdateVideoRequest edits a video's metadata. ThumbnailPath is optional.
type UpdateVideoRequest struct {
	Title         string
	Description   string
	ThumbnailPath string
}

// UpdateAccountRequest edits the signed-in user's details.
type UpdateAccountRequest struct {
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
}

// unwrap decodes the uniform envelope and unmarshals its data payload into
// out. out may be nil when the caller only needs the side effect.
func unwrap(body []byte, out any) (string, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", err
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return env.Message, err
		}
	}
	return env.Message, nil
}

// profileFrom tolerates the two shapes the backend uses for a user payload:
// the profile directly, or nested under a "user" key (login).
func profileFrom(data []byte) (*session.UserProfile, error) {
	var wrapped struct {
		User *session.UserProfile `json:"user"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.User != nil && wrapped.User.ID != "" {
		return wrapped.User, nil
	}
	var profile session.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
