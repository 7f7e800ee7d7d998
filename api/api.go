package api

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"github.com/0xcafe-io/iz"
	appErrors "github.com/fatali-fataliyev/household_ledger/customErrors"
	"github.com/fatali-fataliyev/household_ledger/internal/auth"
	"github.com/fatali-fataliyev/household_ledger/internal/contextutil"
	"github.com/fatali-fataliyev/household_ledger/internal/ledger"
	"github.com/fatali-fataliyev/household_ledger/logging"
	"github.com/xeipuuv/gojsonschema"
)

const MAX_BODY_BYTES = 1 << 20

//go:embed schemas/*.json
var schemaFS embed.FS

// Pinger reports whether the store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Api struct {
	Service *ledger.Tracker
	Gate    *auth.Gate // nil answers 503 on every authenticated route
	Store   Pinger     // nil without a store
	schemas map[string]*gojsonschema.Schema
}

func NewApi(service *ledger.Tracker, gate *auth.Gate, store Pinger) (*Api, error) {
	schemas, err := loadSchemas()
	if err != nil {
		return nil, err
	}
	return &Api{
		Service: service,
		Gate:    gate,
		Store:   store,
		schemas: schemas,
	}, nil
}

func loadSchemas() (map[string]*gojsonschema.Schema, error) {
	entries, err := fs.ReadDir(schemaFS, "schemas")
	if err != nil {
		return nil, fmt.Errorf("failed to read request schemas: %w", err)
	}
	schemas := make(map[string]*gojsonschema.Schema, len(entries))
	for _, entry := range entries {
		data, err := schemaFS.ReadFile("schemas/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", entry.Name(), err)
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", entry.Name(), err)
		}
		schemas[strings.TrimSuffix(entry.Name(), ".json")] = schema
	}
	return schemas, nil
}

// decode validates the body against the named schema before unmarshalling it
// into dst.
func (api *Api) decode(r *iz.Request, schemaName string, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, MAX_BODY_BYTES))
	if err != nil {
		return appErrors.Invalid("Failed to read request body.")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return appErrors.Invalid("Request body is required.")
	}

	schema, ok := api.schemas[schemaName]
	if !ok {
		return fmt.Errorf("no request schema named %q", schemaName)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return appErrors.Invalid("Request body is not valid JSON.")
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return appErrors.Invalid("Invalid request body: %s.", strings.Join(details, "; "))
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return appErrors.Invalid("Invalid request body: %v.", err)
	}
	return nil
}

func bearerToken(r *http.Request) string {
	token := strings.TrimSpace(r.Header.Get("Authorization"))
	return strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
}

var errNoStore = appErrors.ErrorResponse{
	Code:    appErrors.ErrUnavailable,
	Message: "Database not available.",
}

func (api *Api) authorize(r *http.Request) (int64, error) {
	if api.Gate == nil {
		return 0, errNoStore
	}
	return api.Gate.Authenticate(r.Context(), bearerToken(r))
}

type ownerHandler func(r *iz.Request, ownerID int64) iz.Responder

// authed resolves the session owner before running h.
func (api *Api) authed(h ownerHandler) func(r *iz.Request) iz.Responder {
	return func(r *iz.Request) iz.Responder {
		ownerID, err := api.authorize(r.Request)
		if err != nil {
			return failure(r.Request, "authorization failed", err)
		}
		return h(r, ownerID)
	}
}

// failure logs err and renders it as an ErrorResponse. Messages of
// unclassified errors are not shown to the client.
func failure(r *http.Request, action string, err error) iz.Responder {
	status := httpStatusFromError(err)
	resp := appErrors.ErrorResponse{
		Code:    appErrors.CodeOf(err),
		Message: appErrors.MessageOf(err),
	}

	traceID := contextutil.TraceIDFromContext(r.Context())
	if status >= 500 {
		logging.Logger.Errorf("[TraceID=%s] | %s %s: %s | Error: %v", traceID, r.Method, r.URL.Path, action, err)
		if resp.Code == appErrors.ErrInternal {
			resp.Message = "Something went wrong, try again later."
		}
	} else {
		logging.Logger.Debugf("[TraceID=%s] | %s %s: %s | Error: %v", traceID, r.Method, r.URL.Path, action, err)
	}
	return iz.Respond().Status(status).JSON(resp)
}

func pathID(r *iz.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Invalid("Invalid id '%s'.", raw)
	}
	return id, nil
}

func created(id int64) iz.Responder {
	return iz.Respond().Status(201).JSON(CreatedResponse{ID: id})
}

func affected(n int64) iz.Responder {
	return iz.Respond().Status(200).JSON(AffectedResponse{Affected: n})
}

func (api *Api) HealthHandler(r *iz.Request) iz.Responder {
	if api.Store == nil {
		return iz.Respond().Status(503).Text("store unavailable")
	}
	if err := api.Store.Ping(r.Context()); err != nil {
		traceID := contextutil.TraceIDFromContext(r.Context())
		logging.Logger.Warnf("[TraceID=%s] | health check failed | Error: %v", traceID, err)
		return iz.Respond().Status(503).Text("store unavailable")
	}
	return iz.Respond().Status(200).Text("ok")
}
