// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"context"
	"net/http"
)

// toggleResult tolerates the two field names the backend uses for the
// post-toggle state.
type toggleResult struct {
	IsLiked *bool `json:"isLiked"`
	Liked   *bool `json:"liked"`
}

func (r toggleResult) state() (bool, bool) {
	if r.IsLiked != nil {
		return *r.IsLiked, true
	}
	if r.Liked != nil {
		return *r.Liked, true
	}
	return false, false
}

// ToggleVideoLike calls POST /likes/toggle/v/{videoId}. Returns whether the
// video is liked after the toggle; known reports whether the backend said.
func (c *Client) ToggleVideoLike(ctx context.Context, videoID string) (liked, known bool, err error) {
	return c.toggleLike(ctx, pathLikeVideo+videoID)
}

// ToggleCommentLike calls POST /likes/toggle/c/{commentId}.
func (c *Client) ToggleCommentLike(ctx context.Context, commentID string) (liked, known bool, err error) {
	return c.toggleLike(ctx, pathLikeComment+commentID)
}

func (c *Client) toggleLike(ctx context.Context, path string) (bool, bool, error) {
	body, err := c.do(ctx, apiRequest{method: http.MethodPost, path: path})
	if err != nil {
		return false, false, err
	}
	var result toggleResult
	if _, err := unwrap(body, &result); err != nil {
		return false, false, nil // toggle succeeded; state just not reported
	}
	liked, known := result.state()
	return liked, known, nil
}

// LikedVideos calls GET /likes/videos and returns the videos the signed-in
// user has liked.
func (c *Client) LikedVideos(ctx context.Context) ([]Video, error) {
	body, err := c.do(ctx, apiRequest{method: http.MethodGet, path: pathLikedVideos})
	if err != nil {
		return nil, err
	}
	var entries []struct {
		Video Video `json:"likedVideo"`
	}
	if _, err := unwrap(body, &entries); err != nil {
		return nil, err
	}
	videos := make([]Video, 0, len(entries))
	for _, e := range entries {
		videos = append(videos, e.Video)
	}
	return videos, nil
}
