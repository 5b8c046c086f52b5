// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

// ListVideos calls GET /video with the given filters.
func (c *Client) ListVideos(ctx context.Context, params ListVideosParams) (*VideoPage, error) {
	q := url.Values{}
	if params.UserID != "" {
		q.Set("userId", params.UserID)
	}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.SortBy != "" && params.SortType != "" {
		q.Set("sortBy", params.SortBy)
		q.Set("sortType", params.SortType)
	}

	body, err := c.do(ctx, apiRequest{method: http.MethodGet, path: pathVideo, query: q})
	if err != nil {
		return nil, err
	}
	var page VideoPage
	if _, err := unwrap(body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetVideo calls GET /video/{id}. Viewing counts as a watch server-side.
func (c *Client) GetVideo(ctx context.Context, videoID string) (*Video, error) {
	body, err := c.do(ctx, apiRequest{method: http.MethodGet, path: pathVideo + "/" + videoID})
	if err != nil {
		return nil, err
	}
	var video Video
	if _, err := unwrap(body, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// PublishVideo calls POST /video with a multipart form carrying the video
// file and thumbnail. Uses the long upload timeout.
func (c *Client) PublishVideo(ctx context.Context, req PublishVideoRequest) (*Video, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("title", req.Title); err != nil {
		return nil, err
	}
	if err := w.WriteField("description", req.Description); err != nil {
		return nil, err
	}
	if err := attachFile(w, "videoFile", req.VideoPath); err != nil {
		return nil, err
	}
	if err := attachFile(w, "thumbnail", req.ThumbnailPath); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	body, err := c.do(ctx, apiRequest{
		method:      http.MethodPost,
		path:        pathVideo,
		contentType: w.FormDataContentType(),
		body:        buf.Bytes(),
		upload:      true,
	})
	if err != nil {
		return nil, err
	}
	var video Video
	if _, err := unwrap(body, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// UpdateVideo calls PATCH /video/{id}. The backend takes a multipart form
// here too, with the thumbnail optional.
func (c *Client) UpdateVideo(ctx context.Context, videoID string, req UpdateVideoRequest) (*Video, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("title", req.Title); err != nil {
		return nil, err
	}
	if err := w.WriteField("description", req.Description); err != nil {
		return nil, err
	}
	if req.ThumbnailPath != "" {
		if err := attachFile(w, "thumbnail", req.ThumbnailPath); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	body, err := c.do(ctx, apiRequest{
		method:      http.MethodPatch,
		path:        pathVideo + "/" + videoID,
		contentType: w.FormDataContentType(),
		body:        buf.Bytes(),
	})
	if err != nil {
		return nil, err
	}
	var video Video
	if _, err := unwrap(body, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// DeleteVideo calls DELETE /video/{id}.
func (c *Client) DeleteVideo(ctx context.Context, videoID string) error {
	_, err := c.do(ctx, apiRequest{method: http.MethodDelete, path: pathVideo + "/" + videoID})
	return err
}

// TogglePublish calls PATCH /video/toggle/publish/{id} and returns the new
// publish state.
func (c *Client) TogglePublish(ctx context.Context, videoID string) (bool, error) {
	body, err := c.do(ctx, apiRequest{
		method: http.MethodPatch,
		path:   pathVideo + "/toggle/publish/" + videoID,
	})
	if err != nil {
		return false, err
	}
	var result struct {
		IsPublished bool `json:"isPublished"`
	}
	if _, err := unwrap(body, &result); err != nil {
		return false, err
	}
	return result.IsPublished, nil
}
