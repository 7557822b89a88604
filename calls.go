package pranthora

import (
	"context"
	"net/url"
)

// CallService initiates and stops outbound calls.
type CallService struct {
	r *requestor
}

// Create initiates an outbound call to phoneNumber. agentID is optional;
// when empty the backend uses the account's default routing.
func (s *CallService) Create(ctx context.Context, phoneNumber, agentID string) (*CreateCallResponse, error) {
	params := url.Values{}
	params.Set("phoneNumber", phoneNumber)
	if agentID != "" {
		params.Set("agent_id", agentID)
	}
	var out CreateCallResponse
	if err := s.r.do(ctx, "POST", "/calls", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Conference dials toNumbers into a conference. conferenceName is optional.
func (s *CallService) Conference(ctx context.Context, toNumbers []string, conferenceName string) (*CreateCallResponse, error) {
	body := map[string]any{"to_numbers": toNumbers}
	if conferenceName != "" {
		body["conference_name"] = conferenceName
	}
	var out CreateCallResponse
	if err := s.r.do(ctx, "POST", "/calls/conference", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stop ends an in-progress call by its SID.
func (s *CallService) Stop(ctx context.Context, callSID string) (*CreateCallResponse, error) {
	var out CreateCallResponse
	if err := s.r.do(ctx, "POST", "/calls/"+callSID+"/stop", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
