package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/appointly/booking-mcp/internal/store"
	"github.com/appointly/booking-mcp/internal/telemetry"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Handler executes one tool call. Handlers convert every failure into a
// failure envelope themselves and never return raw errors.
type Handler func(ctx context.Context, args json.RawMessage) *CallResult

// Tool is one externally invocable operation with its declared input
// shape.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
	Handler     Handler        `json:"-"`
}

// Registry maps tool names to handlers and declares their input
// schemas to the transport.
type Registry struct {
	tools  []*Tool
	byName map[string]*Tool
}

// NewRegistry wires the twelve entity tools against the given stores.
// defaults controls staff contact synthesis; nil disables it.
func NewRegistry(stores store.Stores, defaults ContactDefaults) *Registry {
	r := &Registry{byName: make(map[string]*Tool)}

	companies := NewCompanyTools(stores.Companies)
	employees := NewEmployeeTools(stores.Employees, defaults)
	services := NewServiceTools(stores.Services, stores.Auth)

	r.register(&Tool{
		Name:        "list_organizations",
		Description: "List organizations, optionally filtered by partial name or exact email.",
		InputSchema: objectSchema(map[string]any{
			"name":  stringProp("Case-insensitive partial name match"),
			"email": stringProp("Exact email match"),
		}),
		Handler: companies.List,
	})
	r.register(&Tool{
		Name:        "create_organization",
		Description: "Create an organization.",
		InputSchema: objectSchema(map[string]any{
			"name":        stringProp("Organization name"),
			"description": stringProp("Free-text description"),
			"email":       stringProp("Contact email"),
			"phone":       stringProp("Contact phone"),
			"address":     stringProp("Postal address"),
		}, "name"),
		Handler: companies.Create,
	})
	r.register(&Tool{
		Name:        "update_organization",
		Description: "Update an organization. Only supplied fields change.",
		InputSchema: objectSchema(map[string]any{
			"id":          integerProp("Organization id"),
			"name":        stringProp("Organization name"),
			"description": stringProp("Free-text description"),
			"email":       stringProp("Contact email"),
			"phone":       stringProp("Contact phone"),
			"address":     stringProp("Postal address"),
		}, "id"),
		Handler: companies.Update,
	})
	r.register(&Tool{
		Name:        "delete_organization",
		Description: "Delete an organization by id.",
		InputSchema: objectSchema(map[string]any{
			"id": integerProp("Organization id"),
		}, "id"),
		Handler: companies.Delete,
	})

	r.register(&Tool{
		Name:        "list_staff",
		Description: "List staff of an organization, optionally filtered by partial name or exact email.",
		InputSchema: objectSchema(map[string]any{
			"organization_code": integerProp("Organization code"),
			"name":              stringProp("Case-insensitive partial name match"),
			"email":             stringProp("Exact email match"),
		}, "organization_code"),
		Handler: employees.List,
	})
	r.register(&Tool{
		Name:        "create_staff",
		Description: "Create a staff member under an organization. Missing contact details are synthesized.",
		InputSchema: objectSchema(map[string]any{
			"name":              stringProp("Staff member name"),
			"email":             stringProp("Contact email"),
			"phone":             stringProp("Contact phone"),
			"organization_code": integerProp("Organization code"),
		}, "name", "organization_code"),
		Handler: employees.Create,
	})
	r.register(&Tool{
		Name:        "update_staff",
		Description: "Update a staff member. Only supplied fields change.",
		InputSchema: objectSchema(map[string]any{
			"id":                integerProp("Staff member id"),
			"name":              stringProp("Staff member name"),
			"email":             stringProp("Contact email"),
			"phone":             stringProp("Contact phone"),
			"organization_code": integerProp("Organization code"),
		}, "id"),
		Handler: employees.Update,
	})
	r.register(&Tool{
		Name:        "delete_staff",
		Description: "Delete a staff member by id.",
		InputSchema: objectSchema(map[string]any{
			"id": integerProp("Staff member id"),
		}, "id"),
		Handler: employees.Delete,
	})

	r.register(&Tool{
		Name:        "list_offerings",
		Description: "List offerings of an organization, optionally filtered by category and inclusive price range.",
		InputSchema: objectSchema(map[string]any{
			"organization_code": integerProp("Organization code"),
			"category":          stringProp("Exact category match"),
			"price_min":         numberProp("Inclusive lower price bound"),
			"price_max":         numberProp("Inclusive upper price bound"),
		}, "organization_code"),
		Handler: services.List,
	})
	r.register(&Tool{
		Name:        "create_offering",
		Description: "Create an offering under an organization. Requires an authorized requester token.",
		InputSchema: objectSchema(map[string]any{
			"name":              stringProp("Offering name"),
			"description":       stringProp("Free-text description"),
			"price":             numberProp("Price, greater than zero"),
			"duration":          integerProp("Duration in minutes"),
			"category":          stringProp("Category"),
			"organization_code": integerProp("Organization code"),
			"requester_token":   stringProp("Requester token"),
		}, "name", "price", "duration", "organization_code", "requester_token"),
		Handler: services.Create,
	})
	r.register(&Tool{
		Name:        "update_offering",
		Description: "Update an offering. Only supplied fields change. Requires an authorized requester token.",
		InputSchema: objectSchema(map[string]any{
			"id":                integerProp("Offering id"),
			"name":              stringProp("Offering name"),
			"description":       stringProp("Free-text description"),
			"price":             numberProp("Price, greater than zero"),
			"duration":          integerProp("Duration in minutes"),
			"category":          stringProp("Category"),
			"organization_code": integerProp("Organization code"),
			"requester_token":   stringProp("Requester token"),
		}, "id", "requester_token"),
		Handler: services.Update,
	})
	r.register(&Tool{
		Name:        "delete_offering",
		Description: "Delete an offering by id. Requires an authorized requester token.",
		InputSchema: objectSchema(map[string]any{
			"id":              integerProp("Offering id"),
			"requester_token": stringProp("Requester token"),
		}, "id", "requester_token"),
		Handler: services.Delete,
	})

	return r
}

func (r *Registry) register(tool *Tool) {
	r.tools = append(r.tools, tool)
	r.byName[tool.Name] = tool
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []*Tool {
	return r.tools
}

// Call dispatches one tool call by name. The returned error is reserved
// for unknown tool names; every handler failure arrives inside the
// envelope.
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) (*CallResult, error) {
	tool, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}

	started := time.Now()
	result := tool.Handler(ctx, args)
	duration := time.Since(started)

	m := telemetry.GetMetrics()
	attrs := metric.WithAttributes(attribute.String("tool", name))
	m.ToolCallsTotal.Add(ctx, 1, attrs)
	if result.IsError {
		m.ToolCallErrorsTotal.Add(ctx, 1, attrs)
	}
	m.ToolCallDuration.Record(ctx, float64(duration.Milliseconds()), attrs)

	evt := zerolog.Ctx(ctx).Info()
	if result.IsError {
		evt = zerolog.Ctx(ctx).Warn()
	}
	evt.Str("tool", name).Dur("duration", duration).Bool("is_error", result.IsError).Msg("tool call")

	return result, nil
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func integerProp(description string) map[string]any {
	return map[string]any{"type": "integer", "description": description}
}

func numberProp(description string) map[string]any {
	return map[string]any{"type": "number", "description": description}
}
