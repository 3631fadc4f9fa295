package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"phonebook/config"
	"phonebook/internal/handlers"
	"phonebook/internal/models"
	"phonebook/internal/repositories"
	"phonebook/internal/services"
	"phonebook/internal/utils"
)

var contactService *services.ContactService

func init() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	utils.ConfigureLogger(cfg.LogLevel, "json", nil)

	repo, err := repositories.Open(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Error opening %s backend: %v", cfg.Backend, err)
	}
	contactService = services.NewContactService(repo,
		services.WithSortKey(cfg.SortKey),
		services.WithOperationTimeout(cfg.OperationTimeout),
	)
}

func handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	rawID := req.PathParameters["id"]

	switch req.HTTPMethod {
	case http.MethodGet:
		if strings.HasSuffix(req.Path, "/liveness") {
			return jsonResponse(http.StatusOK, map[string]string{"status": "ok"})
		}
		if rawID != "" {
			return handleGet(ctx, rawID)
		}
		return handleList(ctx)
	case http.MethodPost:
		return handleCreate(ctx, req)
	case http.MethodPut:
		return handleUpdate(ctx, rawID, req)
	case http.MethodDelete:
		return handleDelete(ctx, rawID)
	}
	return jsonResponse(http.StatusMethodNotAllowed, models.NewErrorResponse("Method not allowed"))
}

func body(req events.APIGatewayProxyRequest) (*models.ContactRequest, error) {
	raw := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return nil, err
		}
		raw = decoded
	}
	var contact models.ContactRequest
	if err := json.Unmarshal(raw, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

func handleList(ctx context.Context) (events.APIGatewayProxyResponse, error) {
	contacts, err := contactService.List(ctx)
	if err != nil {
		return errorResponse(err, "fetch contacts")
	}
	return jsonResponse(http.StatusOK, contacts)
}

func handleGet(ctx context.Context, rawID string) (events.APIGatewayProxyResponse, error) {
	id, err := utils.ParseID(rawID)
	if err != nil {
		return jsonResponse(http.StatusBadRequest, models.NewErrorResponse(err.Error()))
	}
	contact, err := contactService.Get(ctx, id)
	if err != nil {
		return errorResponse(err, "fetch contact")
	}
	return jsonResponse(http.StatusOK, contact)
}

func handleCreate(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	input, err := body(req)
	if err != nil {
		return jsonResponse(http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
	}
	contact, err := contactService.Create(ctx, input.Fields())
	if err != nil {
		return errorResponse(err, "add contact")
	}
	return jsonResponse(http.StatusCreated, models.NewCreatedResponse("Contact added successfully", contact))
}

func handleUpdate(ctx context.Context, rawID string, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	id, err := utils.ParseID(rawID)
	if err != nil {
		return jsonResponse(http.StatusBadRequest, models.NewErrorResponse(err.Error()))
	}
	input, err := body(req)
	if err != nil {
		return jsonResponse(http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
	}
	contact, err := contactService.Update(ctx, id, input.Fields())
	if err != nil {
		return errorResponse(err, "update contact")
	}
	return jsonResponse(http.StatusOK, models.NewSuccessResponse("Contact updated successfully", contact))
}

func handleDelete(ctx context.Context, rawID string) (events.APIGatewayProxyResponse, error) {
	id, err := utils.ParseID(rawID)
	if err != nil {
		return jsonResponse(http.StatusBadRequest, models.NewErrorResponse(err.Error()))
	}
	if err := contactService.Delete(ctx, id); err != nil {
		return errorResponse(err, "delete contact")
	}
	return jsonResponse(http.StatusOK, models.NewSuccessResponse("Contact deleted successfully", map[string]int64{"id": id}))
}

func errorResponse(err error, action string) (events.APIGatewayProxyResponse, error) {
	status, resp := handlers.ErrorResponse(err, action)
	if status >= http.StatusInternalServerError {
		utils.LogError("Failed to %s: %v", action, err)
	}
	return jsonResponse(status, resp)
}

func jsonResponse(status int, v interface{}) (events.APIGatewayProxyResponse, error) {
	resBody, err := json.Marshal(v)
	if err != nil {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, err
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(resBody),
	}, nil
}

func main() {
	lambda.Start(handler)
}
