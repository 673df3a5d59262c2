// Package opensearch keeps an audit trail of payment steps in an OpenSearch index.
package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"PlisioPay/internal/messaging"

	"github.com/opensearch-project/opensearch-go"
)

var _ messaging.Publisher = (*StepSink)(nil)

type StepSink struct {
	client *opensearch.Client
	index  string
}

// NewStepSink connects to OpenSearch and creates the index when missing.
func NewStepSink(ctx context.Context, urls []string, index string) (*StepSink, error) {
	if len(urls) == 0 {
		return nil, errors.New("no OpenSearch addresses configured")
	}

	cfg := opensearch.Config{
		Addresses: urls,
		Transport: &http.Transport{
			MaxIdleConnsPerHost: 10,
		},
	}
	client, err := opensearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("opensearch client: %w", err)
	}

	sink := &StepSink{client: client, index: index}

	if err := sink.ensureIndex(ctx); err != nil {
		return nil, err
	}
	return sink, nil
}

func (s *StepSink) ensureIndex(ctx context.Context) error {
	res, err := s.client.Indices.Exists([]string{s.index}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("indices.exists: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body := map[string]any{
		"mappings": map[string]any{
			"properties": map[string]any{
				"event_id":       map[string]any{"type": "keyword"},
				"session_id":     map[string]any{"type": "keyword"},
				"type":           map[string]any{"type": "keyword"},
				"correlation_id": map[string]any{"type": "keyword"},
				"created_at":     map[string]any{"type": "date"},
				"data":           map[string]any{"type": "object", "enabled": true},
			},
		},
		"settings": map[string]any{
			"number_of_replicas": 0,
		},
	}
	buf, _ := json.Marshal(body)
	cr, err := s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithBody(bytes.NewReader(buf)),
		s.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("indices.create: %w", err)
	}
	defer cr.Body.Close()
	if cr.IsError() {
		return fmt.Errorf("indices.create error: %s", cr.String())
	}
	return nil
}

type stepDoc struct {
	EventID       string          `json:"event_id"`
	SessionID     string          `json:"session_id"`
	Type          string          `json:"type"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Data          json.RawMessage `json:"data,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Publish indexes the envelope under its event ID, so redelivery overwrites.
func (s *StepSink) Publish(ctx context.Context, env messaging.Envelope) error {
	doc := stepDoc{
		EventID:       env.EventID,
		SessionID:     env.Key,
		Type:          env.Type,
		CorrelationID: env.CorrelationID,
		Data:          env.Payload,
		CreatedAt:     env.Timestamp.UTC(),
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal step doc: %w", err)
	}

	res, err := s.client.Index(
		s.index,
		bytes.NewReader(payload),
		s.client.Index.WithDocumentID(env.EventID),
		s.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index error: %s", res.String())
	}
	return nil
}

// Ping checks cluster reachability.
func (s *StepSink) Ping(ctx context.Context) error {
	res, err := s.client.Ping(s.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("ping error: %s", res.String())
	}
	return nil
}

func (s *StepSink) Close() error { return nil }
