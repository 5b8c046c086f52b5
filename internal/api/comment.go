// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// ListComments calls GET /comment/{videoId}. Public; readable anonymously.
func (c *Client) ListComments(ctx context.Context, videoID string, page, limit int) (*CommentPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	body, err := c.do(ctx, apiRequest{method: http.MethodGet, path: pathComment + videoID, query: q})
	if err != nil {
		return nil, err
	}
	var comments CommentPage
	if _, err := unwrap(body, &comments); err != nil {
		return nil, err
	}
	return &comments, nil
}

// AddComment calls POST /comment/{videoId}.
func (c *Client) AddComment(ctx context.Context, videoID, content string) (*Comment, error) {
	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return nil, err
	}
	body, err := c.do(ctx, apiRequest{
		method:      http.MethodPost,
		path:        pathComment + videoID,
		contentType: "application/json",
		body:        payload,
	})
	if err != nil {
		return nil, err
	}
	var comment Comment
	if _, err := unwrap(body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateComment calls PATCH /comment/c/{commentId}.
func (c *Client) UpdateComment(ctx context.Context, commentID, content string) (*Comment, error) {
	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return nil, err
	}
	body, err := c.do(ctx, apiRequest{
		method:      http.MethodPatch,
		path:        pathCommentByID + commentID,
		contentType: "application/json",
		body:        payload,
	})
	if err != nil {
		return nil, err
	}
	var comment Comment
	if _, err := unwrap(body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment calls DELETE /comment/c/{commentId}.
func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	_, err := c.do(ctx, apiRequest{method: http.MethodDelete, path: pathCommentByID + commentID})
	return err
}
