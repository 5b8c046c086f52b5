// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"context"
	"errors"
	"net/http"
)

// ToggleSubscription calls POST /subscriptions/c/{channelId}. Returns
// whether the session is subscribed to the channel after the toggle.
func (c *Client) ToggleSubscription(ctx context.Context, channelID string) (subscribed, known bool, err error) {
	body, err := c.do(ctx, apiRequest{method: http.MethodPost, path: pathSubscription + channelID})
	if err != nil {
		return false, false, err
	}
	var result struct {
		Subscribed *bool `json:"subscribed"`
	}
	if _, err := unwrap(body, &result); err != nil || result.Subscribed == nil {
		return false, false, nil
	}
	return *result.Subscribed, true, nil
}

// ChannelSubscribers calls GET /subscriptions/u/{channelId} and returns the
// channel's subscriber list.
func (c *Client) ChannelSubscribers(ctx context.Context, channelID string) ([]Subscription, error) {
	body, err := c.do(ctx, apiRequest{method: http.MethodGet, path: pathSubscribers + channelID})
	if err != nil {
		return nil, err
	}
	var subs []Subscription
	if _, err := unwrap(body, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// SubscribedChannels calls GET /subscriptions/c/{subscriberId} and returns
// the channels the user is subscribed to. A 404 means no subscriptions, not
// an error.
func (c *Client) SubscribedChannels(ctx context.Context, subscriberID string) ([]Subscription, error) {
	body, err := c.do(ctx, apiRequest{method: http.MethodGet, path: pathSubscription + subscriberID})
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	var subs []Subscription
	if _, err := unwrap(body, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}
