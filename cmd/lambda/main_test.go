package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"phonebook/internal/models"
)

func TestHandlerLifecycle(t *testing.T) {
	ctx := context.Background()

	res, err := handler(ctx, events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/contacts",
		Body:       `{"name":"Alice","phone":"+123456789"}`,
	})
	if err != nil || res.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d (%v): %s", res.StatusCode, err, res.Body)
	}
	var created struct {
		ID int64 `json:"id"`
	}
	json.Unmarshal([]byte(res.Body), &created)
	id := strconv.FormatInt(created.ID, 10)

	body := base64.StdEncoding.EncodeToString([]byte(`{"name":"Alice","surname":"Smith","phone":"+123456789"}`))
	res, _ = handler(ctx, events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPut,
		Path:            "/contacts/" + id,
		PathParameters:  map[string]string{"id": id},
		Body:            body,
		IsBase64Encoded: true,
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 on update, got %d: %s", res.StatusCode, res.Body)
	}

	res, _ = handler(ctx, events.APIGatewayProxyRequest{
		HTTPMethod:     http.MethodGet,
		Path:           "/contacts/" + id,
		PathParameters: map[string]string{"id": id},
	})
	var contact models.Contact
	json.Unmarshal([]byte(res.Body), &contact)
	if contact.Surname != "Smith" {
		t.Errorf("Expected surname Smith, got %+v", contact)
	}

	res, _ = handler(ctx, events.APIGatewayProxyRequest{
		HTTPMethod:     http.MethodDelete,
		Path:           "/contacts/" + id,
		PathParameters: map[string]string{"id": id},
	})
	if res.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 on delete, got %d", res.StatusCode)
	}

	res, _ = handler(ctx, events.APIGatewayProxyRequest{
		HTTPMethod:     http.MethodDelete,
		Path:           "/contacts/" + id,
		PathParameters: map[string]string{"id": id},
	})
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 on second delete, got %d", res.StatusCode)
	}
}

func TestHandlerRejections(t *testing.T) {
	tests := []struct {
		name   string
		req    events.APIGatewayProxyRequest
		status int
	}{
		{"missing fields", events.APIGatewayProxyRequest{HTTPMethod: http.MethodPost, Body: `{"name":"Bob"}`}, http.StatusBadRequest},
		{"bad body", events.APIGatewayProxyRequest{HTTPMethod: http.MethodPost, Body: `nope`}, http.StatusBadRequest},
		{"bad id", events.APIGatewayProxyRequest{HTTPMethod: http.MethodGet, PathParameters: map[string]string{"id": "x"}}, http.StatusBadRequest},
		{"update without id", events.APIGatewayProxyRequest{HTTPMethod: http.MethodPut, Body: `{"name":"A","phone":"1"}`}, http.StatusBadRequest},
		{"patch", events.APIGatewayProxyRequest{HTTPMethod: http.MethodPatch}, http.StatusMethodNotAllowed},
		{"liveness", events.APIGatewayProxyRequest{HTTPMethod: http.MethodGet, Path: "/liveness"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := handler(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("Handler returned error: %v", err)
			}
			if res.StatusCode != tt.status {
				t.Errorf("Expected %d, got %d: %s", tt.status, res.StatusCode, res.Body)
			}
		})
	}
}

func TestHandlerListIsArray(t *testing.T) {
	res, _ := handler(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: http.MethodGet, Path: "/contacts"})
	var contacts []models.Contact
	if err := json.Unmarshal([]byte(res.Body), &contacts); err != nil {
		t.Errorf("Expected a JSON array, got %s", res.Body)
	}
}
